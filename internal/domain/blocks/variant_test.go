package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heroTemplate(t *testing.T) Template {
	tmpl, ok := Get("hero")
	require.True(t, ok, "hero must exist in the catalog")
	return tmpl
}

func TestDecodeProps(t *testing.T) {
	assert.Equal(t, map[string]any{"a": "b"}, DecodeProps(json.RawMessage(`{"a":"b"}`)))
	// bad history degrades, never fails
	assert.Equal(t, map[string]any{}, DecodeProps(json.RawMessage(`not json`)))
	assert.Equal(t, map[string]any{}, DecodeProps(json.RawMessage(`null`)))
	assert.Equal(t, map[string]any{}, DecodeProps(nil))
}

func TestApplyDefaultsFillsMissing(t *testing.T) {
	tmpl := Template{
		Key:      "demo",
		Defaults: map[string]any{"title": "hello", "count": float64(3)},
	}

	out := ApplyDefaults(tmpl, map[string]any{"title": "custom"})

	assert.Equal(t, "custom", out["title"])
	assert.Equal(t, float64(3), out["count"])
}

func TestApplyDefaultsReplacesTypeDrift(t *testing.T) {
	tmpl := Template{
		Key:      "demo",
		Defaults: map[string]any{"title": "hello"},
	}

	// a number where the schema expects a string
	out := ApplyDefaults(tmpl, map[string]any{"title": float64(42)})
	assert.Equal(t, "hello", out["title"])
}

func TestApplyDefaultsKeepsUnknownProps(t *testing.T) {
	tmpl := Template{
		Key:      "demo",
		Defaults: map[string]any{"title": "hello"},
	}

	out := ApplyDefaults(tmpl, map[string]any{"legacy": "keep me"})
	assert.Equal(t, "keep me", out["legacy"])
	assert.Equal(t, "hello", out["title"])
}

func TestResolveVariant(t *testing.T) {
	tmpl := heroTemplate(t)
	require.NotEmpty(t, tmpl.Variants)
	known := tmpl.Variants[len(tmpl.Variants)-1]

	assert.Equal(t, known, ResolveVariant(tmpl, map[string]any{"variant": known}))

	// unknown and absent both fall back to the default
	assert.Equal(t, tmpl.DefaultVariant, ResolveVariant(tmpl, map[string]any{"variant": "no-such"}))
	assert.Equal(t, tmpl.DefaultVariant, ResolveVariant(tmpl, map[string]any{}))
	assert.Equal(t, tmpl.DefaultVariant, ResolveVariant(tmpl, map[string]any{"variant": 7}))
}

// Resolution is pure: the same instance resolves the same variant no
// matter what else is on the page.
func TestResolveVariantIsPure(t *testing.T) {
	tmpl := heroTemplate(t)
	props := map[string]any{"variant": tmpl.DefaultVariant}

	first := ResolveVariant(tmpl, props)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveVariant(tmpl, props))
	}
}

func TestCatalogDefaultsAreValidVariants(t *testing.T) {
	for _, tmpl := range List() {
		require.NotEmpty(t, tmpl.Variants, "template %s has no variants", tmpl.Key)
		assert.Contains(t, tmpl.Variants, tmpl.DefaultVariant,
			"template %s default variant must be in its variant list", tmpl.Key)
	}
}
