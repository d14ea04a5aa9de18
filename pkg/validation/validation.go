package validation

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
	"go.mau.fi/whatsmeow/types"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

var registry = errx.NewRegistry("VALIDATION")

var (
	CodeInvalidIdentifier  = registry.Register("INVALID_IDENTIFIER", errx.TypeValidation, http.StatusBadRequest, "Invalid identifier")
	CodeInvalidParticipant = registry.Register("INVALID_PARTICIPANT", errx.TypeValidation, http.StatusBadRequest, "Invalid participant ID")
	CodeInvalidReaction    = registry.Register("INVALID_REACTION", errx.TypeValidation, http.StatusBadRequest, "Invalid reaction")
)

// Server suffixes as the remote API spells them.
var (
	IndividualSuffix = "@" + types.LegacyUserServer
	GroupSuffix      = "@" + types.GroupServer
	ChannelSuffix    = "@" + types.NewsletterServer
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{7,15}$`)
	sessionPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	nonDigits      = regexp.MustCompile(`[^0-9]`)
)

func invalid(format string, args ...any) error {
	return registry.NewWithMessage(CodeInvalidIdentifier, fmt.Sprintf(format, args...))
}

// parseJID splits a plain user@server id. Device and agent forms such as
// 123.0:1@c.us and ids with more than one @ are rejected.
func parseJID(id string) (types.JID, bool) {
	if strings.Count(id, "@") != 1 {
		return types.JID{}, false
	}
	jid, err := types.ParseJID(id)
	if err != nil || jid.User != id[:strings.IndexByte(id, '@')] {
		return types.JID{}, false
	}
	return jid, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isContactID(id string) bool {
	jid, ok := parseJID(id)
	return ok && jid.Server == types.LegacyUserServer && isDigits(jid.User)
}

// isGroupUser matches the creator-timestamp form of a group id user.
func isGroupUser(user string) bool {
	creator, created, ok := strings.Cut(user, "-")
	return ok && isDigits(creator) && isDigits(created)
}

// ValidateChatID accepts individual (number@c.us) and group (number@g.us,
// number-timestamp@g.us) chat ids.
func ValidateChatID(chatID string) error {
	trimmed := strings.TrimSpace(chatID)
	if trimmed == "" {
		return invalid("Chat ID is required")
	}
	jid, ok := parseJID(trimmed)
	individual := ok && isDigits(jid.User) && (jid.Server == types.LegacyUserServer || jid.Server == types.GroupServer)
	group := ok && jid.Server == types.GroupServer && isGroupUser(jid.User)
	if !individual && !group {
		return invalid("Invalid chat ID format: %q. Expected format: number@c.us (individual) or number-timestamp@g.us (group)", trimmed)
	}
	return nil
}

func ValidateContactID(contactID string) error {
	trimmed := strings.TrimSpace(contactID)
	if trimmed == "" {
		return invalid("Contact ID is required")
	}
	if !isContactID(trimmed) {
		return invalid("Invalid contact ID format: %q. Expected format: number@c.us", trimmed)
	}
	return nil
}

// ValidateGroupChatID only checks the group server suffix.
func ValidateGroupChatID(chatID string) error {
	trimmed := strings.TrimSpace(chatID)
	if trimmed == "" {
		return invalid("Group Chat ID is required")
	}
	if !strings.HasSuffix(trimmed, GroupSuffix) {
		return invalid("Invalid group chat ID format: %q. Expected format: number@g.us or number-timestamp@g.us", trimmed)
	}
	return nil
}

// ValidatePhoneNumber strips everything but digits before checking the length.
// The error echoes the caller's input untouched.
func ValidatePhoneNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return invalid("Phone number is required")
	}
	digits := nonDigits.ReplaceAllString(number, "")
	if !phonePattern.MatchString(digits) {
		return invalid("Invalid phone number format: %q. Expected 7-15 digits without + or spaces.", number)
	}
	return nil
}

func ValidateChannelID(channelID string) error {
	trimmed := strings.TrimSpace(channelID)
	if trimmed == "" {
		return invalid("Channel ID is required")
	}
	if jid, ok := parseJID(trimmed); !ok || jid.Server != types.NewsletterServer || !isDigits(jid.User) {
		return invalid("Invalid channel ID format: %q. Expected format: number%s", trimmed, ChannelSuffix)
	}
	return nil
}

func ValidateSessionID(sessionID string) error {
	trimmed := strings.TrimSpace(sessionID)
	if trimmed == "" {
		return invalid("Session ID is required")
	}
	if !sessionPattern.MatchString(trimmed) {
		return invalid("Invalid session ID format: %q. Use only alphanumeric characters, dashes, and underscores.", trimmed)
	}
	return nil
}

// ValidateReaction allows an empty reaction (removes the current one) or a
// single emoji.
func ValidateReaction(reaction string) error {
	if reaction == "" {
		return nil
	}
	if !gomoji.ContainsEmoji(reaction) || uniseg.GraphemeClusterCount(reaction) != 1 {
		return registry.NewWithMessage(CodeInvalidReaction,
			fmt.Sprintf("Invalid reaction: %q. Expected a single emoji, or an empty value to remove the reaction", reaction))
	}
	return nil
}
