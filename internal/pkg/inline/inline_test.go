package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x01}
	value := Encode(data, "image/png")

	mediaType, decoded, err := Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, data, decoded)
}

func TestDecodeRejectsNonInlineValues(t *testing.T) {
	for _, value := range []string{"", "plain text", "data:image/png,nobase64marker"} {
		_, _, err := Decode(value)
		assert.ErrorIs(t, err, ErrNotInline, value)
	}
}

func TestDecodeRejectsBrokenPayload(t *testing.T) {
	_, _, err := Decode("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage(Encode([]byte{1}, "image/jpeg")))
	assert.False(t, IsImage(Encode([]byte{1}, "application/pdf")))
	assert.False(t, IsImage(""))
}
