package helper

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	coverMaxWidth  = 600
	coverMaxHeight = 800
)

// DecodeCoverImage takes the wire form of a cover (raw base64 or a
// "data:image/...;base64,xxx" data URL) and returns the image bytes.
// Undecodable payloads yield nil — the book is simply stored without a cover.
func DecodeCoverImage(payload string) []byte {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}
	if strings.HasPrefix(payload, "data:image") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	return raw
}

// NormalizeCover downscales oversized covers to fit coverMaxWidth x coverMaxHeight
// and re-encodes as JPEG, so a single upload cannot blow up row size.
// Bytes that do not decode as an image are kept as-is.
func NormalizeCover(raw []byte) []byte {
	if len(raw) == 0 {
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return raw
	}

	bounds := img.Bounds()
	if bounds.Dx() > coverMaxWidth || bounds.Dy() > coverMaxHeight {
		img = imaging.Fit(img, coverMaxWidth, coverMaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return raw
	}
	return buf.Bytes()
}

// EncodeCoverDataURL renders stored cover bytes as a base64 data URL.
func EncodeCoverDataURL(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
}
