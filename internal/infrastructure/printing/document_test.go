package printing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextBlockHeight(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		block := NewTextBlock("short", TextStyle{Size: 10})
		assert.InDelta(t, 10*lineHeightFactor, block.Height(200), 0.01)
	})

	t.Run("wraps long text", func(t *testing.T) {
		long := "a very long line item description that cannot possibly fit on one narrow receipt line"
		block := NewTextBlock(long, TextStyle{Size: 10})
		narrow := block.Height(80)
		wide := block.Height(500)
		assert.Greater(t, narrow, wide)
	})

	t.Run("empty text still one line", func(t *testing.T) {
		block := NewTextBlock("", TextStyle{Size: 10})
		assert.InDelta(t, 10*lineHeightFactor, block.Height(200), 0.01)
	})
}

func TestBlockDefaults(t *testing.T) {
	block := NewTextBlock("x", TextStyle{})
	assert.Equal(t, 10.0, block.Style.Size)
	assert.Equal(t, 400, block.Style.Weight)
}

func TestRowAndGridHeights(t *testing.T) {
	t.Run("row is tallest cell", func(t *testing.T) {
		row := NewRowBlock("space-between", NewSpacerBlock(5), NewSpacerBlock(20))
		assert.Equal(t, 20.0, row.Height(200))
	})

	t.Run("empty row is flat", func(t *testing.T) {
		assert.Equal(t, 0.0, NewRowBlock("start").Height(200))
	})

	t.Run("grid sums row maxima", func(t *testing.T) {
		grid := NewGridBlock(2, 48,
			NewSpacerBlock(10), NewSpacerBlock(15),
			NewSpacerBlock(20))
		assert.Equal(t, 35.0, grid.Height(200))
	})
}

func TestContainerHeight(t *testing.T) {
	container := NewContainerBlock(ContainerStyle{Padding: 8}, NewSpacerBlock(10), NewSpacerBlock(5))
	assert.Equal(t, 31.0, container.Height(200))
}

func TestDocumentContentWidth(t *testing.T) {
	t.Run("margin only", func(t *testing.T) {
		doc := &Document{PageWidth: 226.77, Margin: 12}
		assert.InDelta(t, 202.77, doc.ContentWidth(), 0.01)
	})

	t.Run("border eats into content", func(t *testing.T) {
		doc := &Document{
			PageWidth:    226.77,
			Margin:       12,
			Border:       &BorderSpec{Width: 1},
			BorderMargin: 2,
		}
		assert.InDelta(t, 196.77, doc.ContentWidth(), 0.01)
	})
}

func TestDocumentHeight(t *testing.T) {
	doc := &Document{
		PageWidth: 226.77,
		Margin:    12,
		Blocks:    []Block{NewSpacerBlock(10), NewBarBlock(1, "#000", 100)},
	}
	assert.Equal(t, 11.0, doc.Height())
}

func TestPaginate(t *testing.T) {
	blocks := []Block{NewSpacerBlock(10), NewSpacerBlock(10), NewSpacerBlock(10)}

	t.Run("splits when a block would overflow", func(t *testing.T) {
		doc := &Document{PageWidth: 226.77, Margin: 12, Blocks: blocks}
		pages := doc.Paginate(25)
		assert.Len(t, pages, 2)
		assert.Len(t, pages[0].Blocks, 2)
		assert.Len(t, pages[1].Blocks, 1)
	})

	t.Run("everything fits on one page", func(t *testing.T) {
		doc := &Document{PageWidth: 226.77, Margin: 12, Blocks: blocks}
		pages := doc.Paginate(1000)
		assert.Len(t, pages, 1)
		assert.Len(t, pages[0].Blocks, 3)
	})

	t.Run("oversized block gets its own page", func(t *testing.T) {
		doc := &Document{
			PageWidth: 226.77,
			Margin:    12,
			Blocks:    []Block{NewSpacerBlock(10), NewSpacerBlock(500), NewSpacerBlock(10)},
		}
		pages := doc.Paginate(100)
		assert.Len(t, pages, 3)
	})

	t.Run("non-positive page height keeps one page", func(t *testing.T) {
		doc := &Document{PageWidth: 226.77, Margin: 12, Blocks: blocks}
		pages := doc.Paginate(0)
		assert.Len(t, pages, 1)
	})
}
