package wwebjs

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	qrCode "github.com/skip2/go-qrcode"
)

// SessionOption is one entry of the session picker offered to the host.
type SessionOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListSessionOptions lists the sessions known to the remote API. The list is
// never nil; on failure it is empty and the error explains why.
func (c *Client) ListSessionOptions(ctx context.Context) ([]SessionOption, error) {
	options := []SessionOption{}

	resp, err := c.Request(ctx, http.MethodGet, "/session/getSessions", nil, nil)
	if err != nil {
		return options, err
	}

	var sessions any = resp
	if obj, ok := resp.(map[string]any); ok {
		switch {
		case obj["result"] != nil:
			sessions = obj["result"]
		case obj["data"] != nil:
			sessions = obj["data"]
		}
	}

	list, ok := sessions.([]any)
	if !ok {
		return options, nil
	}
	for _, entry := range list {
		switch s := entry.(type) {
		case string:
			options = append(options, SessionOption{Name: s, Value: s})
		case map[string]any:
			id, _ := s["id"].(string)
			if id == "" {
				continue
			}
			status, _ := s["status"].(string)
			options = append(options, SessionOption{Name: fmt.Sprintf("%s (%s)", id, status), Value: id})
		}
	}
	return options, nil
}

// Ping checks that the credentials reach the remote API.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodGet, "/ping", nil, nil)
	return err
}

// RenderQRImage encodes a pairing code as a base64 PNG.
func RenderQRImage(code string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	qrPNG, err := qrCode.Encode(code, qrCode.Medium, size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(qrPNG), nil
}
