package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/wwebjs"
)

var registry = errx.NewRegistry("DISPATCH")

var (
	CodeUnknownOperation     = registry.Register("UNKNOWN_OPERATION", errx.TypeBadRequest, http.StatusBadRequest, "Unknown operation")
	CodeInvalidItemParameter = registry.Register("INVALID_ITEM_PARAMETER", errx.TypeValidation, http.StatusBadRequest, "Invalid item parameter")
	CodeEmptyParticipants    = registry.Register("EMPTY_PARTICIPANTS", errx.TypeValidation, http.StatusBadRequest, "At least one participant ID is required")
)

const (
	ResourceSession   = "session"
	ResourceClient    = "client"
	ResourceMessage   = "message"
	ResourceChat      = "chat"
	ResourceGroupChat = "groupChat"
	ResourceContact   = "contact"
	ResourceChannel   = "channel"
)

// Requester issues one request against the remote API with fixed credentials.
type Requester interface {
	Request(ctx context.Context, method string, path string, body map[string]any, query url.Values) (any, error)
	Credentials() wwebjs.Credentials
}

type handler func(c *call) (any, error)

type resource struct {
	// prelude resolves the identifiers every operation of the resource needs.
	prelude    func(c *call) error
	operations map[string]handler
}

var resources = map[string]*resource{
	ResourceSession:   sessionResource,
	ResourceClient:    clientResource,
	ResourceMessage:   messageResource,
	ResourceChat:      chatResource,
	ResourceGroupChat: groupChatResource,
	ResourceContact:   contactResource,
	ResourceChannel:   channelResource,
}

type Dispatcher struct {
	requester Requester
	media     types.MediaOptions
}

type Option func(*Dispatcher)

func WithMediaOptions(opts types.MediaOptions) Option {
	return func(d *Dispatcher) {
		d.media = opts
	}
}

func New(requester Requester, opts ...Option) *Dispatcher {
	d := &Dispatcher{requester: requester}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the (resource, operation) named by params for item index.
// Unknown pairs fail before anything is resolved or sent.
func (d *Dispatcher) Dispatch(ctx context.Context, index int, params Params) (any, error) {
	resourceName, _ := params.String("resource")
	operation, _ := params.String("operation")

	res, ok := resources[resourceName]
	if !ok {
		return nil, registry.NewWithMessage(CodeUnknownOperation,
			fmt.Sprintf("Unknown resource: %s", resourceName)).WithDetail("itemIndex", index)
	}
	h, ok := res.operations[operation]
	if !ok {
		return nil, registry.NewWithMessage(CodeUnknownOperation,
			fmt.Sprintf("Unknown %s operation: %s", resourceName, operation)).WithDetail("itemIndex", index)
	}

	c := &call{
		ctx:        ctx,
		dispatcher: d,
		index:      index,
		params:     params,
	}
	if res.prelude != nil {
		if err := res.prelude(c); err != nil {
			return nil, err
		}
	}

	log.ActionOp(resourceName, operation, index).Debug("Dispatching action")
	return h(c)
}

// Catalog lists every resource with its operations, sorted.
func Catalog() map[string][]string {
	out := make(map[string][]string, len(resources))
	for name, res := range resources {
		ops := make([]string, 0, len(res.operations))
		for op := range res.operations {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		out[name] = ops
	}
	return out
}
