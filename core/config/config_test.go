package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readerConfig struct {
	TabletPDFMinWidth int           `env:"TEST_FORMAT_TABLET_PDF_MIN_WIDTH" envDefault:"0"`
	CacheTTL          time.Duration `env:"TEST_CONTENT_CACHE_TTL" envDefault:"30s"`
}

type requiredConfig struct {
	URL string `env:"TEST_CONTENT_API_URL_REQUIRED,required"`
}

func TestLoadCachesPerType(t *testing.T) {
	reset()
	t.Cleanup(reset)
	t.Setenv("TEST_FORMAT_TABLET_PDF_MIN_WIDTH", "1000")

	var first readerConfig
	require.NoError(t, Load(&first))
	assert.Equal(t, 1000, first.TabletPDFMinWidth)
	assert.Equal(t, 30*time.Second, first.CacheTTL)

	t.Setenv("TEST_FORMAT_TABLET_PDF_MIN_WIDTH", "1200")

	var second readerConfig
	require.NoError(t, Load(&second))
	assert.Equal(t, first, second, "second load is served from cache")

	var fresh readerConfig
	require.NoError(t, Parse(&fresh))
	assert.Equal(t, 1200, fresh.TabletPDFMinWidth)
}

func TestLoadErrors(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var missing requiredConfig
	err := Load(&missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	assert.ErrorIs(t, Load[readerConfig](nil), ErrInvalidTarget)

	var notStruct int
	assert.ErrorIs(t, Load(&notStruct), ErrInvalidTarget)

	assert.Panics(t, func() { MustLoad(&requiredConfig{}) })
}
