package types

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/sunshineplan/imgconv"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
)

const defaultMaxImageWidth = 1024

type MediaOptions struct {
	ConvertWebP bool
	Compress    bool
	MaxWidth    int
}

func MediaOptionsFromEnv() MediaOptions {
	return MediaOptions{
		ConvertWebP: env.GetEnvBoolOrDefault("WWEBJS_MEDIA_IMAGE_CONVERT_WEBP", false),
		Compress:    env.GetEnvBoolOrDefault("WWEBJS_MEDIA_IMAGE_COMPRESSION", false),
		MaxWidth:    env.GetEnvIntOrDefault("WWEBJS_MEDIA_IMAGE_MAX_WIDTH", defaultMaxImageWidth),
	}
}

// NormalizeMedia rewrites base64 MessageMedia images according to opts.
// Anything that is not an image object with a data field passes through.
func NormalizeMedia(content any, opts MediaOptions) (any, error) {
	if !opts.ConvertWebP && !opts.Compress {
		return content, nil
	}
	media, ok := content.(map[string]any)
	if !ok {
		return content, nil
	}
	mimeType, _ := media["mimetype"].(string)
	data, _ := media["data"].(string)
	if !strings.HasPrefix(mimeType, "image/") || data == "" {
		return content, nil
	}

	imageBytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, registry.NewWithMessage(CodeInvalidMedia, "Invalid MessageMedia data: expected base64 encoded bytes").WithCause(err)
	}

	if mimeType == "image/webp" && opts.ConvertWebP {
		img, err := imgconv.Decode(bytes.NewReader(imageBytes))
		if err != nil {
			return nil, registry.NewWithMessage(CodeInvalidMedia, "Error while decoding WebP image").WithCause(err)
		}
		buf := new(bytes.Buffer)
		if err := imgconv.Write(buf, img, &imgconv.FormatOption{Format: imgconv.PNG}); err != nil {
			return nil, registry.NewWithMessage(CodeInvalidMedia, "Error while encoding PNG image").WithCause(err)
		}
		imageBytes = buf.Bytes()
		mimeType = "image/png"
	}

	if opts.Compress && (mimeType == "image/png" || mimeType == "image/jpeg") {
		maxWidth := opts.MaxWidth
		if maxWidth <= 0 {
			maxWidth = defaultMaxImageWidth
		}
		img, err := imgconv.Decode(bytes.NewReader(imageBytes))
		if err != nil {
			return nil, registry.NewWithMessage(CodeInvalidMedia, "Error while decoding image for compression").WithCause(err)
		}
		if img.Bounds().Dx() > maxWidth {
			format := imgconv.JPEG
			if mimeType == "image/png" {
				format = imgconv.PNG
			}
			buf := new(bytes.Buffer)
			err = imgconv.Write(buf,
				imgconv.Resize(img, &imgconv.ResizeOption{Width: maxWidth}),
				&imgconv.FormatOption{Format: format})
			if err != nil {
				return nil, registry.NewWithMessage(CodeInvalidMedia, "Error while encoding resized image").WithCause(err)
			}
			imageBytes = buf.Bytes()
		}
	}

	out := make(map[string]any, len(media))
	for k, v := range media {
		out[k] = v
	}
	out["mimetype"] = mimeType
	out["data"] = base64.StdEncoding.EncodeToString(imageBytes)
	return out, nil
}
