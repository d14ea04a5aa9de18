package dispatch

var chatResource = &resource{
	prelude: func(c *call) error {
		if err := c.resolveSession(); err != nil {
			return err
		}
		return c.resolveChat()
	},
	operations: map[string]handler{
		"getInfo":            chatIDPost("/chat/getClassInfo/{sessionId}", nil),
		"fetchMessages":      chatIDPost("/chat/fetchMessages/{sessionId}", searchOptionsFields),
		"getContact":         chatIDPost("/chat/getContact/{sessionId}", nil),
		"sendStateTyping":    chatIDPost("/chat/sendStateTyping/{sessionId}", nil),
		"sendStateRecording": chatIDPost("/chat/sendStateRecording/{sessionId}", nil),
		"clearMessages":      chatIDPost("/chat/clearMessages/{sessionId}", nil),
		"delete":             chatIDPost("/chat/delete/{sessionId}", nil),
		"sendSeen":           chatIDPost("/chat/sendSeen/{sessionId}", nil),
		"markUnread":         chatIDPost("/chat/markUnread/{sessionId}", nil),
		"getLabels":          chatIDPost("/chat/getLabels/{sessionId}", nil),
	},
}

// chatIDPost posts {chatId} plus extra fields; the prelude has set chatID.
func chatIDPost(template string, extra fields) handler {
	return func(c *call) (any, error) {
		body := map[string]any{"chatId": c.chatID}
		if extra != nil {
			if err := extra(c, body); err != nil {
				return nil, err
			}
		}
		return c.post(template, body)
	}
}

func searchOptionsFields(c *call, body map[string]any) error {
	if searchOptions, ok := c.params.Map("searchOptions"); ok && len(searchOptions) > 0 {
		body["searchOptions"] = copyMap(searchOptions)
	}
	return nil
}
