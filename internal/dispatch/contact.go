package dispatch

var contactResource = &resource{
	prelude: func(c *call) error {
		if err := c.resolveSession(); err != nil {
			return err
		}
		return c.resolveContact()
	},
	operations: map[string]handler{
		"getInfo":          contactPost("/contact/getClassInfo/{sessionId}"),
		"block":            contactPost("/contact/block/{sessionId}"),
		"unblock":          contactPost("/contact/unblock/{sessionId}"),
		"getAbout":         contactPost("/contact/getAbout/{sessionId}"),
		"getChat":          contactPost("/contact/getChat/{sessionId}"),
		"getProfilePicUrl": contactPost("/contact/getProfilePicUrl/{sessionId}"),
		"getCommonGroups":  contactPost("/contact/getCommonGroups/{sessionId}"),
	},
}
