package dispatch

import (
	"net/http"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/wwebjs"
)

// Session operations resolve the session themselves; the fleet wide ones
// need none.
var sessionResource = &resource{
	operations: map[string]handler{
		"getSessions":       fixedGet("/session/getSessions"),
		"start":             startSession,
		"stop":              sessionGet("/session/stop/{sessionId}"),
		"getStatus":         sessionGet("/session/status/{sessionId}"),
		"getQrCode":         getQRCode,
		"getQrImage":        sessionGet("/session/qr/{sessionId}/image"),
		"restart":           sessionGet("/session/restart/{sessionId}"),
		"terminate":         sessionGet("/session/terminate/{sessionId}"),
		"setWebhook":        setWebhook,
		"getWebhook":        sessionGet("/session/getWebhook/{sessionId}"),
		"terminateInactive": fixedGet("/session/terminateInactive"),
		"terminateAll":      fixedGet("/session/terminateAll"),
	},
}

func fixedGet(path string) handler {
	return func(c *call) (any, error) {
		return c.get(path)
	}
}

func sessionGet(template string) handler {
	return func(c *call) (any, error) {
		if err := c.resolveSession(); err != nil {
			return nil, err
		}
		return c.get(template)
	}
}

// startSession switches to POST only when a webhook URL override is given;
// older remote versions only know the GET form.
func startSession(c *call) (any, error) {
	if err := c.resolveSession(); err != nil {
		return nil, err
	}
	if options, ok := c.params.Map("options"); ok {
		if webhookURL, _ := options["webhookUrl"].(string); webhookURL != "" {
			return c.post("/session/start/{sessionId}", map[string]any{"webhookUrl": webhookURL})
		}
	}
	return c.get("/session/start/{sessionId}")
}

func getQRCode(c *call) (any, error) {
	if err := c.resolveSession(); err != nil {
		return nil, err
	}
	resp, err := c.get("/session/qr/{sessionId}")
	if err != nil || !c.params.BoolOrDefault("renderQrImage", false) {
		return resp, err
	}

	obj, ok := resp.(map[string]any)
	if !ok {
		return resp, nil
	}
	code, _ := obj["qr"].(string)
	if code == "" {
		return resp, nil
	}
	image, err := wwebjs.RenderQRImage(code, 256)
	if err != nil {
		log.ActionOp(ResourceSession, "getQrCode", c.index).WithError(err).Warn("Failed to render QR image")
		return resp, nil
	}
	out := copyMap(obj)
	out["qrImage"] = image
	return out, nil
}

func setWebhook(c *call) (any, error) {
	if err := c.resolveSession(); err != nil {
		return nil, err
	}
	webhookURL, err := c.required("webhookUrl")
	if err != nil {
		return nil, err
	}
	return c.request(http.MethodPut, "/session/setWebhook/{sessionId}", map[string]any{"webhookUrl": webhookURL})
}
