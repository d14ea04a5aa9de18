package dispatch

var channelResource = &resource{
	prelude: func(c *call) error {
		return c.resolveSession()
	},
	operations: map[string]handler{
		"getAll":        fixedGet("/client/getChannels/{sessionId}"),
		"getInfo":       channelPost("/channel/getClassInfo/{sessionId}", nil),
		"sendMessage":   channelPost("/channel/sendMessage/{sessionId}", replyFields),
		"fetchMessages": channelPost("/channel/fetchMessages/{sessionId}", nil),
		"subscribe":     channelPost("/client/subscribeToChannel/{sessionId}", nil),
		"unsubscribe":   channelPost("/client/unsubscribeFromChannel/{sessionId}", nil),
		"create":        createChannel,
		"search":        searchChannels,
		"delete":        channelPost("/channel/deleteChannel/{sessionId}", nil),
	},
}

func channelPost(template string, extra fields) handler {
	return func(c *call) (any, error) {
		if err := c.resolveChannel(); err != nil {
			return nil, err
		}
		return chatIDPost(template, extra)(c)
	}
}

func createChannel(c *call) (any, error) {
	name, err := c.required("channelName")
	if err != nil {
		return nil, err
	}
	body := map[string]any{"name": name}
	if description := c.params.StringOrDefault("channelDescription", ""); description != "" {
		body["description"] = description
	}
	return c.post("/client/createChannel/{sessionId}", body)
}

func searchChannels(c *call) (any, error) {
	query, err := c.required("query")
	if err != nil {
		return nil, err
	}
	return c.post("/client/searchChannels/{sessionId}", map[string]any{"query": query})
}
