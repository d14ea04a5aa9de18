package dispatch

import (
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/validation"
)

var messageResource = &resource{
	prelude: func(c *call) error {
		if err := c.resolveSession(); err != nil {
			return err
		}
		if err := c.resolveChat(); err != nil {
			return err
		}
		messageID, err := c.required("messageId")
		if err != nil {
			return err
		}
		c.messageID = messageID
		return nil
	},
	operations: map[string]handler{
		"getInfo":       messagePost("/message/getClassInfo/{sessionId}", nil),
		"reply":         messagePost("/message/reply/{sessionId}", replyFields),
		"react":         messagePost("/message/react/{sessionId}", reactFields),
		"forward":       messagePost("/message/forward/{sessionId}", forwardFields),
		"edit":          messagePost("/message/edit/{sessionId}", editFields),
		"delete":        messagePost("/message/delete/{sessionId}", deleteFields),
		"downloadMedia": messagePost("/message/downloadMedia/{sessionId}", nil),
		"star":          messagePost("/message/star/{sessionId}", nil),
		"unstar":        messagePost("/message/unstar/{sessionId}", nil),
	},
}

// fields adds operation specific entries to a request body.
type fields func(c *call, body map[string]any) error

func messagePost(template string, extra fields) handler {
	return func(c *call) (any, error) {
		body := map[string]any{
			"chatId":    c.chatID,
			"messageId": c.messageID,
		}
		if extra != nil {
			if err := extra(c, body); err != nil {
				return nil, err
			}
		}
		return c.post(template, body)
	}
}

func replyFields(c *call, body map[string]any) error {
	content, err := c.content()
	if err != nil {
		return err
	}
	body["contentType"] = string(content.ContentType)
	body["content"] = content.Content
	return nil
}

func reactFields(c *call, body map[string]any) error {
	reaction := c.params.StringOrDefault("reaction", "")
	if err := validation.ValidateReaction(reaction); err != nil {
		return c.itemError(err)
	}
	body["reaction"] = reaction
	return nil
}

func forwardFields(c *call, body map[string]any) error {
	destination, _ := c.params.String("destinationChatId")
	if err := validation.ValidateChatID(destination); err != nil {
		return registry.NewWithMessage(CodeInvalidItemParameter, "Destination "+err.Error()).
			WithDetail("itemIndex", c.index).
			WithCause(err)
	}
	body["destinationChatId"] = destination
	return nil
}

func editFields(c *call, body map[string]any) error {
	content, err := c.required("editContent")
	if err != nil {
		return err
	}
	body["content"] = content
	return nil
}

func deleteFields(c *call, body map[string]any) error {
	body["everyone"] = c.params.BoolOrDefault("everyone", false)
	return nil
}
