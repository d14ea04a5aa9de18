package trigger

// Event is one dataType the remote API can post.
type Event struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

var events = []Event{
	{"Authenticated", "authenticated", "Client has been authenticated"},
	{"Authentication Failure", "auth_failure", "Authentication failed"},
	{"Call Received", "call", "Incoming call received"},
	{"Chat Archived", "chat_archived", "Chat was archived or unarchived"},
	{"Chat Removed", "chat_removed", "Chat was removed"},
	{"Connection State Changed", "change_state", "Connection state changed"},
	{"Contact Changed", "contact_changed", "Contact has been updated"},
	{"Disconnected", "disconnected", "Client was disconnected"},
	{"Group Join", "group_join", "Someone joined a group"},
	{"Group Leave", "group_leave", "Someone left a group"},
	{"Group Update", "group_update", "Group info was updated"},
	{"Loading Screen", "loading_screen", "Loading screen progress"},
	{"Media Uploaded", "media_uploaded", "Media has been uploaded"},
	{"Message ACK", "message_ack", "Message acknowledgement received"},
	{"Message Created", "message_create", "New message created, including sent messages"},
	{"Message Received", "message", "New incoming message received"},
	{"Message Revoked (Everyone)", "message_revoke_everyone", "Message was deleted for everyone"},
	{"Message Revoked (Me)", "message_revoke_me", "Message was deleted for me"},
	{"QR Code", "qr", "QR code received for authentication"},
	{"Ready", "ready", "Client is ready to send and receive messages"},
}

func Events() []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}
