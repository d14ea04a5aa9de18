package trigger

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/validation"
)

type Outcome string

const (
	OutcomeAccepted     Outcome = "accepted"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeUnauthorized Outcome = "unauthorized"
)

// Payload is the envelope the remote API posts to its webhook.
type Payload struct {
	DataType  string `json:"dataType"`
	SessionID string `json:"sessionId"`
	Data      any    `json:"data"`
}

// Message holds the fields the filters look at.
type Message struct {
	ChatID string
	Body   string
	FromMe bool
}

// Result of running one inbound call through a trigger.
type Result struct {
	Outcome Outcome
	// Reason is the response text for unauthorized calls and a log hint
	// otherwise.
	Reason  string
	Payload Payload
}

// HeaderFunc returns a request header by case-insensitive name.
type HeaderFunc func(name string) string

// Evaluate runs authentication, the event allow-list and the filters in
// order, stopping at the first rejection. raw must be the body exactly as
// received.
func Evaluate(cfg Config, header HeaderFunc, raw []byte) Result {
	if reason, ok := authenticate(cfg.Authentication, header, raw); !ok {
		return Result{Outcome: OutcomeUnauthorized, Reason: reason}
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return Result{Outcome: OutcomeIgnored, Reason: "payload is not a JSON object"}
	}
	payload := Payload{
		DataType:  stringField(body, "dataType"),
		SessionID: stringField(body, "sessionId"),
		Data:      body["data"],
	}

	if len(cfg.Events) > 0 && !contains(cfg.Events, payload.DataType) {
		return Result{Outcome: OutcomeIgnored, Reason: "event not selected", Payload: payload}
	}

	if reason, ok := matchFilters(cfg.Filters, payload, EffectiveMessage(payload.Data)); !ok {
		return Result{Outcome: OutcomeIgnored, Reason: reason, Payload: payload}
	}
	return Result{Outcome: OutcomeAccepted, Payload: payload}
}

func authenticate(auth Authentication, header HeaderFunc, raw []byte) (string, bool) {
	switch auth.Mode {
	case AuthHeader:
		name := auth.HeaderName
		if name == "" {
			name = DefaultHeaderName
		}
		actual := header(name)
		if actual == "" || actual != auth.HeaderValue {
			return "Unauthorized", false
		}
	case AuthHMACSignature:
		name := auth.SignatureHeader
		if name == "" {
			name = DefaultSignatureHeader
		}
		if !ValidSignature(raw, header(name), auth.HMACSecret) {
			return "Invalid signature", false
		}
	}
	return "", true
}

// Sign returns the sha256= prefixed HMAC of payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature accepts the prefixed or the bare hex form.
func ValidSignature(payload []byte, signature string, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(payload, secret)
	if len(signature) != len(expected) {
		expected = strings.TrimPrefix(expected, "sha256=")
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}

// EffectiveMessage picks data.message when it is an object and data itself
// otherwise.
func EffectiveMessage(data any) Message {
	obj, _ := data.(map[string]any)
	if nested, ok := obj["message"].(map[string]any); ok {
		obj = nested
	}

	body, _ := obj["body"].(string)
	fromMe, _ := obj["fromMe"].(bool)
	return Message{
		ChatID: extractChatID(obj),
		Body:   body,
		FromMe: fromMe,
	}
}

func extractChatID(obj map[string]any) string {
	if from, _ := obj["from"].(string); from != "" {
		return from
	}
	if chatID, _ := obj["chatId"].(string); chatID != "" {
		return chatID
	}
	chat, ok := obj["chat"].(map[string]any)
	if !ok {
		return ""
	}
	switch id := chat["id"].(type) {
	case string:
		return id
	case map[string]any:
		serialized, _ := id["_serialized"].(string)
		return serialized
	}
	return ""
}

func matchFilters(f Filters, payload Payload, msg Message) (string, bool) {
	if f.FromMe && f.ExcludeFromMe {
		return "fromMe and excludeFromMe conflict", false
	}
	if f.GroupsOnly && f.IndividualsOnly {
		return "groupsOnly and individualsOnly conflict", false
	}
	if f.SessionID != "" && payload.SessionID != f.SessionID {
		return "session mismatch", false
	}
	if f.ChatIDContains != "" && (msg.ChatID == "" || !strings.Contains(msg.ChatID, f.ChatIDContains)) {
		return "chat id mismatch", false
	}
	if f.BodyContains != "" && (msg.Body == "" || !strings.Contains(strings.ToLower(msg.Body), strings.ToLower(f.BodyContains))) {
		return "body mismatch", false
	}
	if f.FromMe && !msg.FromMe {
		return "not from me", false
	}
	if f.ExcludeFromMe && msg.FromMe {
		return "from me", false
	}
	if f.GroupsOnly && !strings.Contains(msg.ChatID, validation.GroupSuffix) {
		return "not a group chat", false
	}
	if f.IndividualsOnly && !strings.Contains(msg.ChatID, validation.IndividualSuffix) {
		return "not an individual chat", false
	}
	return "", true
}

// stringField reads a string member, treating any other type as empty.
func stringField(obj map[string]any, key string) string {
	v, _ := obj[key].(string)
	return v
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
