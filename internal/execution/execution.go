// Package execution runs one action over a batch of items and turns the
// remote responses into output items.
package execution

import (
	"context"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/dispatch"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// DataKey holds responses that are not JSON objects.
const DataKey = "data"

// Policy is checked once per item at the loop boundary.
type Policy struct {
	// ContinueOnFail turns a failed item into an {error} output instead of
	// aborting the run.
	ContinueOnFail bool
}

type Dispatcher interface {
	Dispatch(ctx context.Context, index int, params dispatch.Params) (any, error)
}

type Item struct {
	JSON   map[string]any
	Params dispatch.Params
}

// Failure is returned when a run aborts. Outputs holds what the earlier
// items produced.
type Failure struct {
	Outputs   []types.ResponseItem
	ItemIndex int
	Err       error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Run processes items strictly in order, one remote request at a time.
func Run(ctx context.Context, d Dispatcher, items []Item, policy Policy) ([]types.ResponseItem, error) {
	outputs := make([]types.ResponseItem, 0, len(items))

	for i, item := range items {
		resp, err := d.Dispatch(ctx, i, item.Params)
		if err != nil {
			if !policy.ContinueOnFail {
				return outputs, &Failure{Outputs: outputs, ItemIndex: i, Err: err}
			}
			log.Logger().WithField("item", i).Warn(errx.Describe(err))
			outputs = append(outputs, types.ResponseItem{
				JSON:       map[string]any{"error": err.Error()},
				PairedItem: types.PairedItem{Item: i},
			})
			continue
		}

		for _, merged := range Merge(item.JSON, resp) {
			outputs = append(outputs, types.ResponseItem{
				JSON:       merged,
				PairedItem: types.PairedItem{Item: i},
			})
		}
	}

	return outputs, nil
}

// Merge combines an input item with a response. Response fields win. A list
// response yields one merged object per element, an empty list none.
func Merge(input map[string]any, response any) []map[string]any {
	if list, ok := response.([]any); ok {
		out := make([]map[string]any, 0, len(list))
		for _, element := range list {
			out = append(out, mergeOne(input, element))
		}
		return out
	}
	return []map[string]any{mergeOne(input, response)}
}

func mergeOne(input map[string]any, response any) map[string]any {
	out := make(map[string]any, len(input)+1)
	for k, v := range input {
		out[k] = v
	}

	switch val := response.(type) {
	case nil:
	case map[string]any:
		for k, v := range val {
			out[k] = v
		}
	default:
		out[DataKey] = val
	}
	return out
}

// ItemsFromRequest applies each item's parameters over the shared ones.
func ItemsFromRequest(req types.RequestExecute) []Item {
	shared := dispatch.Params(req.Parameters)
	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		json := it.JSON
		if json == nil {
			json = map[string]any{}
		}
		items = append(items, Item{
			JSON:   json,
			Params: shared.Merge(dispatch.Params(it.Parameters)),
		})
	}
	return items
}
