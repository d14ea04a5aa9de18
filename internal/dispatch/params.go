package dispatch

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Params is the parameter bag of one item. Lookups report absence instead of
// failing; handlers decide what a missing value means.
type Params map[string]any

func (p Params) Lookup(name string) (any, bool) {
	v, ok := p[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String reads a scalar parameter as text. Numbers and booleans are formatted,
// objects and lists are reported as absent.
func (p Params) String(name string) (string, bool) {
	v, ok := p.Lookup(name)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

func (p Params) StringOrDefault(name string, fallback string) string {
	if v, ok := p.String(name); ok {
		return v
	}
	return fallback
}

// Bool accepts JSON booleans and their string spellings.
func (p Params) Bool(name string) (bool, bool) {
	v, ok := p.Lookup(name)
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

func (p Params) BoolOrDefault(name string, fallback bool) bool {
	if v, ok := p.Bool(name); ok {
		return v
	}
	return fallback
}

// Map reads a collection parameter. A JSON object encoded as a string is decoded.
func (p Params) Map(name string) (map[string]any, bool) {
	v, ok := p.Lookup(name)
	if !ok {
		return nil, false
	}
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, false
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(val), &decoded); err != nil {
			return nil, false
		}
		return decoded, true
	}
	return nil, false
}

// JSONText returns a parameter as JSON source text, encoding structured values.
func (p Params) JSONText(name string, fallback string) string {
	v, ok := p.Lookup(name)
	if !ok {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(encoded)
}

// Merge returns a new bag with overrides applied on top of p.
func (p Params) Merge(overrides Params) Params {
	out := make(Params, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
