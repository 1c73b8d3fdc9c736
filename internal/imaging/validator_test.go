package imaging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocaai/console/internal/config"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func pngPayload(size int) []byte {
	data := make([]byte, size)
	copy(data, pngHeader)
	return data
}

func newValidator(limits config.CatalogLimits) *Validator {
	return NewValidator(config.NewStaticCatalogLimitsHolder(limits))
}

func TestEncodeDataURI_HappyPath(t *testing.T) {
	v := newValidator(config.DefaultCatalogLimits())

	uri, err := v.EncodeDataURI(pngPayload(64), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncodeDataURI_SniffsWhenDeclarationMissing(t *testing.T) {
	v := newValidator(config.DefaultCatalogLimits())

	uri, err := v.EncodeDataURI(pngPayload(64), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{0}, 32)...)
	uri, err = v.EncodeDataURI(jpeg, "application/octet-stream")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}

func TestEncodeDataURI_RawSizeBoundary(t *testing.T) {
	// Raise the encoded cap so only the raw byte cap is in play.
	limits := config.DefaultCatalogLimits()
	limits.MaxEncodedImageChars = 10_000_000
	v := newValidator(limits)

	_, err := v.EncodeDataURI(pngPayload(2_097_152), "image/png")
	assert.NoError(t, err)

	_, err = v.EncodeDataURI(pngPayload(2_097_153), "image/png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestEncodeDataURI_EncodedCap(t *testing.T) {
	v := newValidator(config.DefaultCatalogLimits())

	// Within the raw cap but base64 expansion exceeds one million chars.
	_, err := v.EncodeDataURI(pngPayload(1_000_000), "image/png")
	assert.ErrorIs(t, err, ErrEncodedImageTooLarge)
}

func TestEncodeDataURI_RejectsUnsupportedTypes(t *testing.T) {
	v := newValidator(config.DefaultCatalogLimits())

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	_, err := v.EncodeDataURI(svg, "image/svg+xml")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	// A lying declaration does not help: the payload is sniffed.
	_, err = v.EncodeDataURI(svg, "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
}

func TestEncodeDataURI_EmptyInput(t *testing.T) {
	v := newValidator(config.DefaultCatalogLimits())

	_, err := v.EncodeDataURI(nil, "image/png")
	assert.ErrorIs(t, err, ErrImageReadFailure)
}

func TestCheckInline(t *testing.T) {
	limits := config.DefaultCatalogLimits()
	limits.MaxEncodedImageChars = 100
	v := newValidator(limits)

	assert.NoError(t, v.CheckInline(""))
	assert.NoError(t, v.CheckInline("https://cdn.example/img.png"))
	assert.NoError(t, v.CheckInline(strings.Repeat("A", 100)))
	assert.ErrorIs(t, v.CheckInline(strings.Repeat("A", 101)), ErrEncodedImageTooLarge)

	// Only the base64 payload of a data URI counts against the cap.
	uri := "data:image/png;base64," + strings.Repeat("A", 100)
	assert.NoError(t, v.CheckInline(uri))
	assert.ErrorIs(t, v.CheckInline(uri+"A"), ErrEncodedImageTooLarge)
}
