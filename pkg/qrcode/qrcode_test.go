package qrcode_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/pkg/qrcode"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"default", 0, qrcode.DefaultSize},
		{"custom", 300, 300},
		{"too_small", 10, qrcode.MinSize},
		{"too_large", 5000, qrcode.MaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := qrcode.Generate("https://panelhouse.example/comics/night-shift", tt.size)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, img.Bounds().Dx())
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	_, err := qrcode.Generate("", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)

	_, err = qrcode.Generate(strings.Repeat("x", qrcode.MaxContentLength+1), 256)
	assert.ErrorIs(t, err, qrcode.ErrContentTooLarge)
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.GenerateBase64Image("hello", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
