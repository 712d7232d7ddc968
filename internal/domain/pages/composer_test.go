package pages

import (
	"testing"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(id string, sortIndex int, pinned bool, slot string) blocks.BlockInstance {
	return blocks.BlockInstance{
		ID:          id,
		TemplateKey: "text",
		SortIndex:   sortIndex,
		Pinned:      pinned,
		PinnedSlot:  slot,
	}
}

func ids(in []blocks.BlockInstance) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		out = append(out, b.ID)
	}
	return out
}

func TestOrderBlocks(t *testing.T) {
	layout := []blocks.BlockInstance{
		block("footer-1", 0, true, blocks.SlotFooter),
		block("header-2", 1, true, blocks.SlotHeader),
		block("header-1", 0, true, blocks.SlotHeader),
	}
	own := []blocks.BlockInstance{
		block("body-3", 2, false, ""),
		block("body-1", 0, false, ""),
		block("body-2", 1, false, ""),
	}

	got := OrderBlocks(layout, own)

	assert.Equal(t,
		[]string{"header-1", "header-2", "body-1", "body-2", "body-3", "footer-1"},
		ids(got))
}

// Input order must not matter: the same block set always renders the
// same sequence.
func TestOrderBlocksDeterministic(t *testing.T) {
	layout := []blocks.BlockInstance{
		block("h", 0, true, blocks.SlotHeader),
		block("f", 0, true, blocks.SlotFooter),
	}
	own := []blocks.BlockInstance{
		block("a", 0, false, ""),
		block("b", 1, false, ""),
		block("c", 2, false, ""),
	}

	want := ids(OrderBlocks(layout, own))

	shuffledLayout := []blocks.BlockInstance{layout[1], layout[0]}
	shuffledOwn := []blocks.BlockInstance{own[2], own[0], own[1]}
	got := ids(OrderBlocks(shuffledLayout, shuffledOwn))

	assert.Equal(t, want, got)
}

// Blocks sharing a sort index must still render in one fixed order, no
// matter how the database happened to return them.
func TestOrderBlocksTieBreaksByID(t *testing.T) {
	a := block("a", 0, false, "")
	b := block("b", 0, false, "")

	got := ids(OrderBlocks(nil, []blocks.BlockInstance{a, b}))
	reversed := ids(OrderBlocks(nil, []blocks.BlockInstance{b, a}))

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, got, reversed)
}

func TestOrderBlocksFiltersPinnedFromOwn(t *testing.T) {
	// a pinned block slipped into the page's own list must not render twice
	own := []blocks.BlockInstance{
		block("a", 0, false, ""),
		block("stray-pinned", 1, true, blocks.SlotHeader),
	}

	got := OrderBlocks(nil, own)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestOrderBlocksEmpty(t *testing.T) {
	got := OrderBlocks(nil, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIsValidType(t *testing.T) {
	for _, typ := range []string{TypeHome, TypeCatalog, TypeCart, TypeProfile, TypeCustom} {
		assert.True(t, IsValidType(typ), typ)
	}
	assert.False(t, IsValidType("blog"))
	assert.False(t, IsValidType(""))
}

func TestLayoutSlugIsReserved(t *testing.T) {
	p := Page{Slug: LayoutSlug}
	assert.True(t, p.IsLayout())
	assert.False(t, Page{Slug: "home"}.IsLayout())
}
