package validation

import (
	"fmt"
	"strings"
)

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseParticipantIDs splits a comma separated list of contact ids. The first
// id that is not number@c.us fails the whole list.
func ParseParticipantIDs(raw string) ([]string, error) {
	ids := splitList(raw)
	for _, id := range ids {
		if !isContactID(id) {
			return nil, registry.NewWithMessage(CodeInvalidParticipant,
				fmt.Sprintf("Invalid participant ID: %q. Expected format: number@c.us", id))
		}
	}
	return ids, nil
}

// ParseMentions splits like ParseParticipantIDs but never validates.
func ParseMentions(raw string) []string {
	return splitList(raw)
}
