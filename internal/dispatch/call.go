package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/validation"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/wwebjs"
)

// call is the state of one dispatched item.
type call struct {
	ctx        context.Context
	dispatcher *Dispatcher
	index      int
	params     Params

	sessionID string
	chatID    string
	contactID string
	messageID string
}

func (c *call) request(method string, template string, body map[string]any) (any, error) {
	path := wwebjs.BuildEndpoint(template, c.sessionID)
	return c.dispatcher.requester.Request(c.ctx, method, path, body, nil)
}

func (c *call) post(template string, body map[string]any) (any, error) {
	return c.request(http.MethodPost, template, body)
}

func (c *call) get(template string) (any, error) {
	return c.request(http.MethodGet, template, nil)
}

// itemError ties a parameter validation failure to the item it came from.
func (c *call) itemError(err error) error {
	if !errx.IsType(err, errx.TypeValidation) {
		return err
	}
	if errx.IsCode(err, wwebjs.CodeMissingSession) || errx.IsCode(err, CodeInvalidItemParameter) {
		return err
	}
	return registry.NewWithMessage(CodeInvalidItemParameter, err.Error()).
		WithDetail("itemIndex", c.index).
		WithCause(err)
}

func (c *call) resolveSession() error {
	sessionID, err := wwebjs.ResolveSessionID(c.params, c.dispatcher.requester.Credentials())
	if err != nil {
		return c.itemError(err)
	}
	c.sessionID = sessionID
	return nil
}

func (c *call) required(name string) (string, error) {
	v, ok := c.params.String(name)
	if !ok {
		return "", registry.NewWithMessage(CodeInvalidItemParameter,
			fmt.Sprintf("Missing required parameter %q", name)).WithDetail("itemIndex", c.index)
	}
	return v, nil
}

// identifier reads name and checks it with validate. The raw value is kept
// as given.
func (c *call) identifier(name string, validate func(string) error) (string, error) {
	v, _ := c.params.String(name)
	if err := validate(v); err != nil {
		return "", c.itemError(err)
	}
	return v, nil
}

func (c *call) resolveChat() error {
	chatID, err := c.identifier("chatId", validation.ValidateChatID)
	c.chatID = chatID
	return err
}

func (c *call) resolveGroupChat() error {
	chatID, err := c.identifier("chatId", validation.ValidateGroupChatID)
	c.chatID = chatID
	return err
}

func (c *call) resolveChannel() error {
	chatID, err := c.identifier("chatId", validation.ValidateChannelID)
	c.chatID = chatID
	return err
}

func (c *call) resolveContact() error {
	contactID, err := c.identifier("contactId", validation.ValidateContactID)
	c.contactID = contactID
	return err
}

func (c *call) participants() ([]string, error) {
	raw, _ := c.params.String("participantIds")
	ids, err := validation.ParseParticipantIDs(raw)
	if err != nil {
		return nil, c.itemError(err)
	}
	if len(ids) == 0 {
		return nil, registry.New(CodeEmptyParticipants).WithDetail("itemIndex", c.index)
	}
	return ids, nil
}

// content reads contentType plus either content (text) or contentJson.
func (c *call) content() (types.ParsedContent, error) {
	kind := types.ContentType(c.params.StringOrDefault("contentType", string(types.ContentString)))

	var parsed types.ParsedContent
	var err error
	if kind == types.ContentString {
		parsed, err = types.ParseContent(kind, c.params.StringOrDefault("content", ""), "{}")
	} else {
		parsed, err = types.ParseContent(kind, "", c.params.JSONText("contentJson", "{}"))
	}
	if err != nil {
		return types.ParsedContent{}, err
	}

	if kind == types.ContentMessageMedia {
		parsed.Content, err = types.NormalizeMedia(parsed.Content, c.dispatcher.media)
		if err != nil {
			return types.ParsedContent{}, err
		}
	}
	return parsed, nil
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// truthy mirrors how optional collection entries count as supplied.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []any:
		return true
	}
	return true
}
