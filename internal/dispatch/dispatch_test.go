package dispatch

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/validation"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/wwebjs"
)

type sentRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeRequester struct {
	creds    wwebjs.Credentials
	response any
	err      error
	sent     []sentRequest
}

func (f *fakeRequester) Request(_ context.Context, method string, path string, body map[string]any, _ url.Values) (any, error) {
	f.sent = append(f.sent, sentRequest{Method: method, Path: path, Body: body})
	return f.response, f.err
}

func (f *fakeRequester) Credentials() wwebjs.Credentials {
	return f.creds
}

func newFake() *fakeRequester {
	return &fakeRequester{
		creds:    wwebjs.Credentials{BaseURL: "http://remote", DefaultSessionID: "s1"},
		response: map[string]any{"success": true},
	}
}

func dispatchOne(t *testing.T, f *fakeRequester, params Params) (any, error) {
	t.Helper()
	return New(f).Dispatch(context.Background(), 0, params)
}

func TestDispatchRoutes(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   sentRequest
	}{
		{
			name:   "session status",
			params: Params{"resource": "session", "operation": "getStatus"},
			want:   sentRequest{Method: http.MethodGet, Path: "/session/status/s1"},
		},
		{
			name:   "fleet sessions need no session",
			params: Params{"resource": "session", "operation": "getSessions"},
			want:   sentRequest{Method: http.MethodGet, Path: "/session/getSessions"},
		},
		{
			name:   "set webhook",
			params: Params{"resource": "session", "operation": "setWebhook", "webhookUrl": "http://hook"},
			want:   sentRequest{Method: http.MethodPut, Path: "/session/setWebhook/s1", Body: map[string]any{"webhookUrl": "http://hook"}},
		},
		{
			name:   "send text",
			params: Params{"resource": "client", "operation": "sendMessage", "chatId": "123@c.us", "content": "hi"},
			want: sentRequest{Method: http.MethodPost, Path: "/client/sendMessage/s1", Body: map[string]any{
				"chatId": "123@c.us", "contentType": "string", "content": "hi",
			}},
		},
		{
			name: "send location from json",
			params: Params{"resource": "client", "operation": "sendMessage", "sessionId": "other", "chatId": "123@g.us",
				"contentType": "Location", "contentJson": `{"latitude":1,"longitude":2}`},
			want: sentRequest{Method: http.MethodPost, Path: "/client/sendMessage/other", Body: map[string]any{
				"chatId": "123@g.us", "contentType": "Location", "content": map[string]any{"latitude": float64(1), "longitude": float64(2)},
			}},
		},
		{
			name:   "blocked contacts has no body",
			params: Params{"resource": "client", "operation": "getBlockedContacts"},
			want:   sentRequest{Method: http.MethodPost, Path: "/client/getBlockedContacts/s1"},
		},
		{
			name:   "phone number",
			params: Params{"resource": "client", "operation": "getNumberId", "number": "+1 555 0100 200"},
			want:   sentRequest{Method: http.MethodPost, Path: "/client/getNumberId/s1", Body: map[string]any{"number": "+1 555 0100 200"}},
		},
		{
			name:   "create group",
			params: Params{"resource": "client", "operation": "createGroup", "groupName": "team", "participantIds": "1@c.us, ,2@c.us,"},
			want: sentRequest{Method: http.MethodPost, Path: "/client/createGroup/s1", Body: map[string]any{
				"name": "team", "participants": []string{"1@c.us", "2@c.us"},
			}},
		},
		{
			name:   "message info",
			params: Params{"resource": "message", "operation": "getInfo", "chatId": "1@c.us", "messageId": "m1"},
			want:   sentRequest{Method: http.MethodPost, Path: "/message/getClassInfo/s1", Body: map[string]any{"chatId": "1@c.us", "messageId": "m1"}},
		},
		{
			name:   "message delete defaults",
			params: Params{"resource": "message", "operation": "delete", "chatId": "1@c.us", "messageId": "m1"},
			want: sentRequest{Method: http.MethodPost, Path: "/message/delete/s1", Body: map[string]any{
				"chatId": "1@c.us", "messageId": "m1", "everyone": false,
			}},
		},
		{
			name:   "message edit",
			params: Params{"resource": "message", "operation": "edit", "chatId": "1@c.us", "messageId": "m1", "editContent": "fixed"},
			want: sentRequest{Method: http.MethodPost, Path: "/message/edit/s1", Body: map[string]any{
				"chatId": "1@c.us", "messageId": "m1", "content": "fixed",
			}},
		},
		{
			name:   "chat fetch with options",
			params: Params{"resource": "chat", "operation": "fetchMessages", "chatId": "1@c.us", "searchOptions": map[string]any{"limit": float64(5)}},
			want: sentRequest{Method: http.MethodPost, Path: "/chat/fetchMessages/s1", Body: map[string]any{
				"chatId": "1@c.us", "searchOptions": map[string]any{"limit": float64(5)},
			}},
		},
		{
			name:   "group participants",
			params: Params{"resource": "groupChat", "operation": "promoteParticipants", "chatId": "1-2@g.us", "participantIds": "3@c.us"},
			want: sentRequest{Method: http.MethodPost, Path: "/groupChat/promoteParticipants/s1", Body: map[string]any{
				"chatId": "1-2@g.us", "participantIds": []string{"3@c.us"},
			}},
		},
		{
			name:   "contact block",
			params: Params{"resource": "contact", "operation": "block", "contactId": "9@c.us"},
			want:   sentRequest{Method: http.MethodPost, Path: "/contact/block/s1", Body: map[string]any{"contactId": "9@c.us"}},
		},
		{
			name:   "channel list",
			params: Params{"resource": "channel", "operation": "getAll"},
			want:   sentRequest{Method: http.MethodGet, Path: "/client/getChannels/s1"},
		},
		{
			name:   "channel create without description",
			params: Params{"resource": "channel", "operation": "create", "channelName": "news"},
			want:   sentRequest{Method: http.MethodPost, Path: "/client/createChannel/s1", Body: map[string]any{"name": "news"}},
		},
		{
			name:   "channel subscribe",
			params: Params{"resource": "channel", "operation": "subscribe", "chatId": "42@newsletter"},
			want:   sentRequest{Method: http.MethodPost, Path: "/client/subscribeToChannel/s1", Body: map[string]any{"chatId": "42@newsletter"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFake()
			got, err := dispatchOne(t, f, tc.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, f.response) {
				t.Errorf("response = %#v", got)
			}
			if len(f.sent) != 1 {
				t.Fatalf("sent %d requests, want 1", len(f.sent))
			}
			if !reflect.DeepEqual(f.sent[0], tc.want) {
				t.Errorf("sent %#v\nwant %#v", f.sent[0], tc.want)
			}
		})
	}
}

func TestStartSessionMethod(t *testing.T) {
	f := newFake()
	if _, err := dispatchOne(t, f, Params{"resource": "session", "operation": "start"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dispatchOne(t, f, Params{"resource": "session", "operation": "start", "options": map[string]any{"webhookUrl": ""}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dispatchOne(t, f, Params{"resource": "session", "operation": "start", "options": map[string]any{"webhookUrl": "http://hook"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []sentRequest{
		{Method: http.MethodGet, Path: "/session/start/s1"},
		{Method: http.MethodGet, Path: "/session/start/s1"},
		{Method: http.MethodPost, Path: "/session/start/s1", Body: map[string]any{"webhookUrl": "http://hook"}},
	}
	if !reflect.DeepEqual(f.sent, want) {
		t.Errorf("sent %#v", f.sent)
	}
}

func TestSendMessageOptions(t *testing.T) {
	f := newFake()
	_, err := dispatchOne(t, f, Params{
		"resource":  "client",
		"operation": "sendMessage",
		"chatId":    "1@c.us",
		"content":   "hi",
		"options": map[string]any{
			"quotedMessageId": "q1",
			"mentions":        "2@c.us, not-an-id",
			"sendSeen":        false,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	options, ok := f.sent[0].Body["options"].(map[string]any)
	if !ok {
		t.Fatalf("options missing from %#v", f.sent[0].Body)
	}
	want := map[string]any{"quotedMessageId": "q1", "mentions": []string{"2@c.us", "not-an-id"}}
	if !reflect.DeepEqual(options, want) {
		t.Errorf("options = %#v", options)
	}
}

func TestUnknownOperationSendsNothing(t *testing.T) {
	tests := []struct {
		params Params
		msg    string
	}{
		{Params{"resource": "session", "operation": "explode"}, "Unknown session operation: explode"},
		{Params{"resource": "fleet", "operation": "getAll"}, "Unknown resource: fleet"},
	}
	for _, tc := range tests {
		f := newFake()
		_, err := dispatchOne(t, f, tc.params)
		if !errx.IsCode(err, CodeUnknownOperation) {
			t.Fatalf("error = %v, want unknown operation", err)
		}
		if err.Error() != tc.msg {
			t.Errorf("message = %q, want %q", err.Error(), tc.msg)
		}
		if len(f.sent) != 0 {
			t.Errorf("sent %d requests", len(f.sent))
		}
	}
}

func TestValidationFailuresSendNothing(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		code   errx.Code
		msg    string
	}{
		{
			name:   "bad chat id",
			params: Params{"resource": "chat", "operation": "getInfo", "chatId": "abc"},
			code:   CodeInvalidItemParameter,
			msg:    `Invalid chat ID format: "abc"`,
		},
		{
			name:   "empty participants",
			params: Params{"resource": "groupChat", "operation": "addParticipants", "chatId": "1@g.us", "participantIds": " , "},
			code:   CodeEmptyParticipants,
			msg:    "At least one participant ID is required",
		},
		{
			name:   "bad participant",
			params: Params{"resource": "groupChat", "operation": "addParticipants", "chatId": "1@g.us", "participantIds": "1@c.us,x"},
			code:   CodeInvalidItemParameter,
			msg:    `Invalid participant ID: "x"`,
		},
		{
			name:   "bad destination",
			params: Params{"resource": "message", "operation": "forward", "chatId": "1@c.us", "messageId": "m", "destinationChatId": "nope"},
			code:   CodeInvalidItemParameter,
			msg:    `Destination Invalid chat ID format: "nope"`,
		},
		{
			name:   "bad reaction",
			params: Params{"resource": "message", "operation": "react", "chatId": "1@c.us", "messageId": "m", "reaction": "ok"},
			code:   CodeInvalidItemParameter,
			msg:    `Invalid reaction: "ok"`,
		},
		{
			name:   "channel id checked",
			params: Params{"resource": "channel", "operation": "getInfo", "chatId": "1@c.us"},
			code:   CodeInvalidItemParameter,
			msg:    "Invalid channel ID format",
		},
		{
			name:   "missing message id",
			params: Params{"resource": "message", "operation": "star", "chatId": "1@c.us"},
			code:   CodeInvalidItemParameter,
			msg:    `Missing required parameter "messageId"`,
		},
		{
			name:   "bad content json",
			params: Params{"resource": "client", "operation": "sendMessage", "chatId": "1@c.us", "contentType": "Poll", "contentJson": "{"},
			code:   types.CodeInvalidJSON,
			msg:    `Invalid JSON content for type "Poll"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFake()
			_, err := dispatchOne(t, f, tc.params)
			if !errx.IsCode(err, tc.code) {
				t.Fatalf("error = %v (%s), want %s", err, errx.Describe(err), tc.code)
			}
			if !strings.HasPrefix(err.Error(), tc.msg) {
				t.Errorf("message = %q, want prefix %q", err.Error(), tc.msg)
			}
			if len(f.sent) != 0 {
				t.Errorf("sent %d requests", len(f.sent))
			}
		})
	}
}

func TestItemErrorKeepsValidationCause(t *testing.T) {
	f := newFake()
	_, err := New(f).Dispatch(context.Background(), 3, Params{"resource": "contact", "operation": "getAbout", "contactId": "1@g.us"})
	if !errx.IsCode(err, validation.CodeInvalidIdentifier) {
		t.Errorf("cause lost: %s", errx.Describe(err))
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		t.Fatalf("not a registered error: %v", err)
	}
	if e.Code != CodeInvalidItemParameter || e.Details["itemIndex"] != 3 {
		t.Errorf("outer error = %s", errx.Describe(e))
	}
}

func TestMissingSession(t *testing.T) {
	f := newFake()
	f.creds.DefaultSessionID = ""
	_, err := dispatchOne(t, f, Params{"resource": "client", "operation": "getChats"})
	if !errx.IsCode(err, wwebjs.CodeMissingSession) {
		t.Fatalf("error = %v", err)
	}
	if len(f.sent) != 0 {
		t.Errorf("sent %d requests", len(f.sent))
	}
}

func TestQRCodeRender(t *testing.T) {
	f := newFake()
	f.response = map[string]any{"success": true, "qr": "2@abcdef"}

	got, err := dispatchOne(t, f, Params{"resource": "session", "operation": "getQrCode", "renderQrImage": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj := got.(map[string]any)
	if image, _ := obj["qrImage"].(string); image == "" {
		t.Errorf("qrImage missing from %#v", obj)
	}
	if _, ok := f.response.(map[string]any)["qrImage"]; ok {
		t.Error("remote response was mutated")
	}
}

func TestRemoteFailurePassesThrough(t *testing.T) {
	f := newFake()
	f.err = errors.New("boom")
	_, err := dispatchOne(t, f, Params{"resource": "client", "operation": "getState"})
	if err == nil || err.Error() != "boom" {
		t.Errorf("error = %v", err)
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 7 {
		t.Fatalf("resources = %d", len(catalog))
	}
	if got := catalog[ResourceContact]; !reflect.DeepEqual(got, []string{
		"block", "getAbout", "getChat", "getCommonGroups", "getInfo", "getProfilePicUrl", "unblock",
	}) {
		t.Errorf("contact ops = %v", got)
	}
}
