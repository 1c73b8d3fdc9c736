// Package imaging gates catalog image uploads. Images are stored inline
// as base64 data URIs, so both the raw payload and the encoded form are
// capped before anything reaches the database.
package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vocaai/console/internal/config"
	"go.uber.org/fx"
)

var (
	ErrImageTooLarge        = errors.New("image_too_large")
	ErrUnsupportedImageType = errors.New("unsupported_image_type")
	ErrEncodedImageTooLarge = errors.New("encoded_image_too_large")
	ErrImageReadFailure     = errors.New("image_read_failure")
)

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type Validator struct {
	limits *config.CatalogLimitsHolder
}

func NewValidator(limits *config.CatalogLimitsHolder) *Validator {
	return &Validator{limits: limits}
}

// EncodeDataURI validates an uploaded image and returns it as a data URI.
// The payload is sniffed and must be a supported image regardless of what
// the upload declared; the declared type only picks the data URI label.
func (v *Validator) EncodeDataURI(data []byte, declaredType string) (string, error) {
	if len(data) == 0 {
		return "", ErrImageReadFailure
	}

	limits := v.limits.Get()
	if int64(len(data)) > limits.MaxImageBytes {
		return "", ErrImageTooLarge
	}

	sniffed := normalizeMIME(http.DetectContentType(data))
	if _, ok := allowedMIMETypes[sniffed]; !ok {
		return "", ErrUnsupportedImageType
	}
	mime := normalizeMIME(declaredType)
	if _, ok := allowedMIMETypes[mime]; !ok {
		mime = sniffed
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if len(encoded) > limits.MaxEncodedImageChars {
		return "", ErrEncodedImageTooLarge
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, encoded), nil
}

// CheckInline applies the encoded-size cap to an image string supplied
// inline on a catalog payload (data URI or URL). Only the base64 payload
// of a data URI counts against the cap, so a URI produced by
// EncodeDataURI always passes.
func (v *Validator) CheckInline(image string) error {
	payload := image
	if strings.HasPrefix(image, "data:") {
		// MIME labels are short, so the prefix bound keeps a crafted
		// string from hiding length ahead of the payload marker.
		if i := strings.Index(image, ";base64,"); i >= 0 && i < 64 {
			payload = image[i+len(";base64,"):]
		}
	}
	if len(payload) > v.limits.Get().MaxEncodedImageChars {
		return ErrEncodedImageTooLarge
	}
	return nil
}

func normalizeMIME(contentType string) string {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime
}

var Module = fx.Module("imaging",
	fx.Provide(NewValidator),
)
