package dispatch

var groupChatResource = &resource{
	prelude: func(c *call) error {
		if err := c.resolveSession(); err != nil {
			return err
		}
		return c.resolveGroupChat()
	},
	operations: map[string]handler{
		"getInfo":             chatIDPost("/groupChat/getClassInfo/{sessionId}", nil),
		"addParticipants":     chatIDPost("/groupChat/addParticipants/{sessionId}", participantFields),
		"removeParticipants":  chatIDPost("/groupChat/removeParticipants/{sessionId}", participantFields),
		"promoteParticipants": chatIDPost("/groupChat/promoteParticipants/{sessionId}", participantFields),
		"demoteParticipants":  chatIDPost("/groupChat/demoteParticipants/{sessionId}", participantFields),
		"getInviteCode":       chatIDPost("/groupChat/getInviteCode/{sessionId}", nil),
		"leave":               chatIDPost("/groupChat/leave/{sessionId}", nil),
		"revokeInvite":        chatIDPost("/groupChat/revokeInvite/{sessionId}", nil),
		"setSubject":          chatIDPost("/groupChat/setSubject/{sessionId}", requiredField("subject")),
		"setDescription":      chatIDPost("/groupChat/setDescription/{sessionId}", requiredField("description")),
	},
}

func participantFields(c *call, body map[string]any) error {
	ids, err := c.participants()
	if err != nil {
		return err
	}
	body["participantIds"] = ids
	return nil
}

func requiredField(name string) fields {
	return func(c *call, body map[string]any) error {
		v, err := c.required(name)
		if err != nil {
			return err
		}
		body[name] = v
		return nil
	}
}
