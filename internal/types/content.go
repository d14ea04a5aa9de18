package types

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

var registry = errx.NewRegistry("CONTENT")

var (
	CodeInvalidJSON  = registry.Register("INVALID_JSON", errx.TypeValidation, http.StatusBadRequest, "Invalid JSON content")
	CodeInvalidMedia = registry.Register("INVALID_MEDIA", errx.TypeValidation, http.StatusBadRequest, "Invalid media content")
)

// ContentType is the message content kind understood by the remote API.
type ContentType string

const (
	ContentString              ContentType = "string"
	ContentMessageMedia        ContentType = "MessageMedia"
	ContentMessageMediaFromURL ContentType = "MessageMediaFromURL"
	ContentLocation            ContentType = "Location"
	ContentContact             ContentType = "Contact"
	ContentPoll                ContentType = "Poll"
)

type ParsedContent struct {
	ContentType ContentType `json:"contentType"`
	Content     any         `json:"content"`
}

// ParseContent returns text verbatim for string content. Every other kind is
// decoded from jsonText without checking it against the kind's shape.
func ParseContent(kind ContentType, text string, jsonText string) (ParsedContent, error) {
	if kind == ContentString {
		return ParsedContent{ContentType: kind, Content: text}, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return ParsedContent{}, registry.NewWithMessage(CodeInvalidJSON,
			fmt.Sprintf("Invalid JSON content for type %q: %s", string(kind), err.Error())).WithCause(err)
	}
	return ParsedContent{ContentType: kind, Content: parsed}, nil
}
