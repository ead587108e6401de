package catalog

import (
	"encoding/base64"

	"github.com/gabriel-vasile/mimetype"
)

var allowedImageTypes = []string{"image/png", "image/jpeg"}

// DetectImageType sniffs data and returns its MIME type when it is PNG or JPEG.
func DetectImageType(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if mt.Is(allowed) {
			return allowed, true
		}
	}
	return mt.String(), false
}

// DataURL encodes data as a base64 data URL of the given MIME type.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
