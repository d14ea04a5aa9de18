package dispatch

import (
	"strings"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/validation"
)

var clientResource = &resource{
	prelude: func(c *call) error {
		return c.resolveSession()
	},
	operations: map[string]handler{
		"sendMessage":        sendMessage,
		"getChats":           fixedGet("/client/getChats/{sessionId}"),
		"getChatById":        chatPost("/client/getChatById/{sessionId}"),
		"getContacts":        fixedGet("/client/getContacts/{sessionId}"),
		"getContactById":     contactPost("/client/getContactById/{sessionId}"),
		"getState":           fixedGet("/client/getState/{sessionId}"),
		"isRegisteredUser":   numberPost("/client/isRegisteredUser/{sessionId}"),
		"getNumberId":        numberPost("/client/getNumberId/{sessionId}"),
		"searchMessages":     searchMessages,
		"sendSeen":           chatPost("/client/sendSeen/{sessionId}"),
		"setStatus":          setStatus,
		"getProfilePicUrl":   contactPost("/client/getProfilePicUrl/{sessionId}"),
		"getBlockedContacts": emptyPost("/client/getBlockedContacts/{sessionId}"),
		"archiveChat":        chatPost("/client/archiveChat/{sessionId}"),
		"unarchiveChat":      chatPost("/client/unarchiveChat/{sessionId}"),
		"muteChat":           muteChat,
		"unmuteChat":         chatPost("/client/unmuteChat/{sessionId}"),
		"pinChat":            chatPost("/client/pinChat/{sessionId}"),
		"unpinChat":          chatPost("/client/unpinChat/{sessionId}"),
		"createGroup":        createGroup,
	},
}

func emptyPost(template string) handler {
	return func(c *call) (any, error) {
		return c.post(template, nil)
	}
}

func chatPost(template string) handler {
	return func(c *call) (any, error) {
		if err := c.resolveChat(); err != nil {
			return nil, err
		}
		return c.post(template, map[string]any{"chatId": c.chatID})
	}
}

func contactPost(template string) handler {
	return func(c *call) (any, error) {
		if err := c.resolveContact(); err != nil {
			return nil, err
		}
		return c.post(template, map[string]any{"contactId": c.contactID})
	}
}

func numberPost(template string) handler {
	return func(c *call) (any, error) {
		number, err := c.identifier("number", validation.ValidatePhoneNumber)
		if err != nil {
			return nil, err
		}
		return c.post(template, map[string]any{"number": number})
	}
}

func sendMessage(c *call) (any, error) {
	if err := c.resolveChat(); err != nil {
		return nil, err
	}
	content, err := c.content()
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"chatId":      c.chatID,
		"contentType": string(content.ContentType),
		"content":     content.Content,
	}
	if raw, ok := c.params.Map("options"); ok && len(raw) > 0 {
		options := map[string]any{}
		if truthy(raw["quotedMessageId"]) {
			options["quotedMessageId"] = raw["quotedMessageId"]
		}
		if truthy(raw["mentions"]) {
			options["mentions"] = mentionList(raw["mentions"])
		}
		if truthy(raw["sendSeen"]) {
			options["sendSeen"] = true
		}
		body["options"] = options
	}
	return c.post("/client/sendMessage/{sessionId}", body)
}

// mentionList accepts the comma separated form or an already split list.
func mentionList(v any) []string {
	switch val := v.(type) {
	case string:
		return validation.ParseMentions(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		return validation.ParseMentions(strings.Join(parts, ","))
	}
	return []string{}
}

func searchMessages(c *call) (any, error) {
	query, err := c.required("query")
	if err != nil {
		return nil, err
	}
	body := map[string]any{"query": query}
	if searchOptions, ok := c.params.Map("searchOptions"); ok && len(searchOptions) > 0 {
		body["options"] = copyMap(searchOptions)
	}
	return c.post("/client/searchMessages/{sessionId}", body)
}

func setStatus(c *call) (any, error) {
	status, err := c.required("status")
	if err != nil {
		return nil, err
	}
	return c.post("/client/setStatus/{sessionId}", map[string]any{"status": status})
}

func muteChat(c *call) (any, error) {
	if err := c.resolveChat(); err != nil {
		return nil, err
	}
	body := map[string]any{"chatId": c.chatID}
	if unmuteDate, ok := c.params.String("unmuteDate"); ok && unmuteDate != "" {
		body["unmuteDate"] = unmuteDate
	}
	return c.post("/client/muteChat/{sessionId}", body)
}

func createGroup(c *call) (any, error) {
	name, err := c.required("groupName")
	if err != nil {
		return nil, err
	}
	participants, err := c.participants()
	if err != nil {
		return nil, err
	}
	return c.post("/client/createGroup/{sessionId}", map[string]any{
		"name":         name,
		"participants": participants,
	})
}
