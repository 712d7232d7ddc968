package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasePath(t *testing.T) {
	site := Site{ID: 7, Slug: "acme"}

	assert.Equal(t, "/acme", BasePath(site, MountSlug))
	assert.Equal(t, "/7/acme", BasePath(site, MountIDSlug))
	assert.Equal(t, "/preview/sites/7", BasePath(site, MountPreview))
}

func TestRewriteHref(t *testing.T) {
	base := "/7/acme"

	cases := []struct {
		name string
		href string
		want string
	}{
		{"relative", "/about", "/7/acme/about"},
		{"no leading slash", "about", "/7/acme/about"},
		{"dot slash", "./about", "/7/acme/about"},
		{"root means base", "/", "/7/acme"},
		{"already rewritten", "/7/acme/cart", "/7/acme/cart"},
		{"external http", "http://example.com", "http://example.com"},
		{"external https", "https://example.com/x", "https://example.com/x"},
		{"protocol relative", "//evil.com", "//evil.com"},
		{"mailto", "mailto:x@y.z", "mailto:x@y.z"},
		{"tel", "tel:+123", "tel:+123"},
		{"anchor", "#section", "#section"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RewriteHref(base, tc.href))
		})
	}
}

// The same block props must rewrite differently per mount: that is the
// whole point of mount-aware base paths.
func TestRewriteHrefPerMount(t *testing.T) {
	site := Site{ID: 3, Slug: "shop"}

	assert.Equal(t, "/shop/cart", RewriteHref(BasePath(site, MountSlug), "/cart"))
	assert.Equal(t, "/3/shop/cart", RewriteHref(BasePath(site, MountIDSlug), "/cart"))
	assert.Equal(t, "/preview/sites/3/cart", RewriteHref(BasePath(site, MountPreview), "/cart"))
}

func TestRewriteLinks(t *testing.T) {
	props := map[string]any{
		"href":  "/about",
		"title": "/not-a-link",
		"cta":   map[string]any{"link": "catalog"},
		"items": []any{
			map[string]any{"url": "/cart"},
			map[string]any{"label": "plain"},
		},
	}

	RewriteLinks("/acme", props)

	assert.Equal(t, "/acme/about", props["href"])
	// non-link keys are never touched
	assert.Equal(t, "/not-a-link", props["title"])
	assert.Equal(t, "/acme/catalog", props["cta"].(map[string]any)["link"])
	assert.Equal(t, "/acme/cart", props["items"].([]any)[0].(map[string]any)["url"])
	assert.Equal(t, "plain", props["items"].([]any)[1].(map[string]any)["label"])
}
