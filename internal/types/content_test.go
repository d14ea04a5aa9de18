package types

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"strings"
	"testing"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

func TestParseContentStringIgnoresJSON(t *testing.T) {
	for _, jsonText := range []string{"{not json", "", `{"a":1}`} {
		got, err := ParseContent(ContentString, "hello", jsonText)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ContentType != ContentString || got.Content != "hello" {
			t.Errorf("got %+v", got)
		}
	}

	got, err := ParseContent(ContentString, "", "")
	if err != nil || got.Content != "" {
		t.Errorf("empty text: got %+v, %v", got, err)
	}
}

func TestParseContentJSONKinds(t *testing.T) {
	got, err := ParseContent(ContentLocation, "", `{"latitude":-23.5,"longitude":-46.6,"description":"SP"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"latitude": -23.5, "longitude": -46.6, "description": "SP"}
	if !reflect.DeepEqual(got.Content, want) {
		t.Errorf("content = %#v", got.Content)
	}

	got, err = ParseContent(ContentPoll, "", `[1,2]`)
	if err != nil {
		t.Fatalf("array content: %v", err)
	}
	if _, ok := got.Content.([]any); !ok {
		t.Errorf("array content decoded as %T", got.Content)
	}
}

func TestParseContentInvalidJSON(t *testing.T) {
	for _, kind := range []ContentType{ContentMessageMedia, ContentMessageMediaFromURL, ContentLocation, ContentContact, ContentPoll} {
		_, err := ParseContent(kind, "ignored", "{bad")
		if err == nil {
			t.Fatalf("%s: expected error", kind)
		}
		if !strings.Contains(err.Error(), "Invalid JSON content") {
			t.Errorf("%s: message = %q", kind, err.Error())
		}
		if !strings.Contains(err.Error(), `"`+string(kind)+`"`) {
			t.Errorf("%s: message does not name the kind: %q", kind, err.Error())
		}
		if !errx.IsCode(err, CodeInvalidJSON) {
			t.Errorf("%s: code mismatch", kind)
		}
	}
}

func encodePNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalizeMediaPassThrough(t *testing.T) {
	content := map[string]any{"mimetype": "application/pdf", "data": "aGVsbG8=", "filename": "a.pdf"}
	got, err := NormalizeMedia(content, MediaOptions{Compress: true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, content) {
		t.Errorf("non-image content changed: %v", got)
	}

	got, err = NormalizeMedia("plain", MediaOptions{ConvertWebP: true})
	if err != nil || got != "plain" {
		t.Errorf("string content: %v, %v", got, err)
	}
}

func TestNormalizeMediaResizesWideImages(t *testing.T) {
	content := map[string]any{"mimetype": "image/png", "data": encodePNG(t, 64, 8), "filename": "wide.png"}
	got, err := NormalizeMedia(content, MediaOptions{Compress: true, MaxWidth: 16})
	if err != nil {
		t.Fatal(err)
	}
	media := got.(map[string]any)
	raw, err := base64.StdEncoding.DecodeString(media["data"].(string))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("resized output is not png: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
	if media["filename"] != "wide.png" || media["mimetype"] != "image/png" {
		t.Errorf("metadata changed: %v", media)
	}
	if content["data"] == media["data"] {
		t.Error("input map was modified in place")
	}
}

func TestNormalizeMediaRejectsBadBase64(t *testing.T) {
	_, err := NormalizeMedia(map[string]any{"mimetype": "image/png", "data": "%%%"}, MediaOptions{Compress: true})
	if !errx.IsCode(err, CodeInvalidMedia) {
		t.Errorf("err = %v", err)
	}
}
