package validation

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

func TestValidateChatID(t *testing.T) {
	valid := []string{"1234567890@c.us", "1234567890@g.us", "1234567890-1609459200@g.us", " 123@c.us "}
	for _, id := range valid {
		if err := ValidateChatID(id); err != nil {
			t.Errorf("ValidateChatID(%q) = %v", id, err)
		}
	}

	invalid := []string{"abc@c.us", "123@s.whatsapp.net", "123@c.usx", "123-@g.us", "123@newsletter", "-123@g.us", "123-456@c.us",
		"123.0:1@c.us", "123:4@c.us", "1@2@c.us", "123-456-789@g.us", "@c.us"}
	for _, id := range invalid {
		err := ValidateChatID(id)
		if err == nil {
			t.Errorf("ValidateChatID(%q) accepted", id)
			continue
		}
		if !strings.Contains(err.Error(), "Invalid chat ID format") {
			t.Errorf("ValidateChatID(%q) message = %q", id, err.Error())
		}
		if !errx.IsCode(err, CodeInvalidIdentifier) {
			t.Errorf("ValidateChatID(%q) code mismatch", id)
		}
	}
}

func TestRequiredMessages(t *testing.T) {
	cases := map[string]func(string) error{
		"Chat ID is required":       ValidateChatID,
		"Contact ID is required":    ValidateContactID,
		"Group Chat ID is required": ValidateGroupChatID,
		"Phone number is required":  ValidatePhoneNumber,
		"Channel ID is required":    ValidateChannelID,
		"Session ID is required":    ValidateSessionID,
	}
	for want, fn := range cases {
		for _, in := range []string{"", "   ", "\t"} {
			err := fn(in)
			if err == nil || err.Error() != want {
				t.Errorf("empty input %q: got %v, want %q", in, err, want)
			}
		}
	}
}

func TestValidateContactID(t *testing.T) {
	if err := ValidateContactID("5511999999999@c.us"); err != nil {
		t.Errorf("valid contact rejected: %v", err)
	}
	err := ValidateContactID("5511999999999@g.us")
	if err == nil {
		t.Fatal("group id accepted as contact")
	}
	want := `Invalid contact ID format: "5511999999999@g.us". Expected format: number@c.us`
	if err.Error() != want {
		t.Errorf("message = %q", err.Error())
	}
}

func TestValidateGroupChatID(t *testing.T) {
	for _, id := range []string{"123@g.us", "123-456@g.us", "anything@g.us"} {
		if err := ValidateGroupChatID(id); err != nil {
			t.Errorf("ValidateGroupChatID(%q) = %v", id, err)
		}
	}
	if err := ValidateGroupChatID("123@c.us"); err == nil {
		t.Error("individual chat accepted as group")
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	for _, n := range []string{"5511999999999", "+55 11 99999-9999", "1234567", "123456789012345"} {
		if err := ValidatePhoneNumber(n); err != nil {
			t.Errorf("ValidatePhoneNumber(%q) = %v", n, err)
		}
	}
	for _, n := range []string{"123456", "1234567890123456", "+1 (23)", "abc"} {
		err := ValidatePhoneNumber(n)
		if err == nil {
			t.Errorf("ValidatePhoneNumber(%q) accepted", n)
			continue
		}
		if !strings.Contains(err.Error(), `"`+n+`"`) {
			t.Errorf("message does not echo original input: %q", err.Error())
		}
	}
}

func TestValidateChannelID(t *testing.T) {
	if err := ValidateChannelID("120363025246125486@newsletter"); err != nil {
		t.Errorf("valid channel rejected: %v", err)
	}
	for _, id := range []string{"abc@newsletter", "123@c.us", "123@newsletter.us", "123:1@newsletter", "123"} {
		if err := ValidateChannelID(id); err == nil {
			t.Errorf("ValidateChannelID(%q) accepted", id)
		}
	}
}

func TestValidateSessionID(t *testing.T) {
	for _, id := range []string{"default", "my-session_01", "ABC"} {
		if err := ValidateSessionID(id); err != nil {
			t.Errorf("ValidateSessionID(%q) = %v", id, err)
		}
	}
	for _, id := range []string{"my session", "a/b", "sess.1", "../x"} {
		if err := ValidateSessionID(id); err == nil {
			t.Errorf("ValidateSessionID(%q) accepted", id)
		}
	}
}

func TestValidateReaction(t *testing.T) {
	for _, r := range []string{"", "👍", "👍🏽"} {
		if err := ValidateReaction(r); err != nil {
			t.Errorf("ValidateReaction(%q) = %v", r, err)
		}
	}
	for _, r := range []string{"ok", "👍👍", "a👍"} {
		err := ValidateReaction(r)
		if err == nil {
			t.Errorf("ValidateReaction(%q) accepted", r)
			continue
		}
		if !errx.IsCode(err, CodeInvalidReaction) {
			t.Errorf("ValidateReaction(%q) code mismatch", r)
		}
	}
}

func TestParseParticipantIDs(t *testing.T) {
	got, err := ParseParticipantIDs("111@c.us, ,222@c.us,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"111@c.us", "222@c.us"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = ParseParticipantIDs("   ")
	if err != nil || len(got) != 0 {
		t.Errorf("blank input: got %v, %v", got, err)
	}

	_, err = ParseParticipantIDs("111@c.us,222@g.us,bad")
	if err == nil {
		t.Fatal("invalid participant accepted")
	}
	if want := `Invalid participant ID: "222@g.us". Expected format: number@c.us`; err.Error() != want {
		t.Errorf("message = %q", err.Error())
	}
}

func TestParseMentions(t *testing.T) {
	got := ParseMentions(" 111@c.us,,not-an-id , ")
	if want := []string{"111@c.us", "not-an-id"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := ParseMentions(""); len(got) != 0 {
		t.Errorf("empty input produced %v", got)
	}
}
