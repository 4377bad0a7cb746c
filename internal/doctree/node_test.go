package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextMarksAreIdempotent(t *testing.T) {
	run := NewText("x", "bold")
	run.addMark("bold")
	run.addMark("bold")
	assert.Equal(t, []string{"bold"}, run.Marks)

	run.addMark("italic")
	assert.Equal(t, []string{"bold", "italic"}, run.Marks, "marks stay sorted")
	assert.True(t, run.HasMark("bold"))
	assert.False(t, run.HasMark("code"))
}

func TestBlockSplitAt(t *testing.T) {
	b := NewBlock("paragraph", NewText("hello world"))

	b.splitAt(0) // boundary, no-op
	b.splitAt(11)
	require.Len(t, b.Inlines, 1)

	b.splitAt(6)
	require.Len(t, b.Inlines, 2)
	assert.Equal(t, "hello ", b.Inlines[0].(*Text).Content)
	assert.Equal(t, "world", b.Inlines[1].(*Text).Content)
}

func TestBlockSplitAtInsideLink(t *testing.T) {
	b := NewBlock("paragraph",
		NewText("see "),
		&Link{URL: "u", Children: []*Text{NewText("the docs")}},
	)

	b.splitAt(7) // "see " + 3 into "the docs"
	link := b.Inlines[1].(*Link)
	require.Len(t, link.Children, 2)
	assert.Equal(t, "the", link.Children[0].Content)
	assert.Equal(t, " docs", link.Children[1].Content)
}

func TestBlockNormalize(t *testing.T) {
	b := &Block{Type: "paragraph", Inlines: []Inline{
		NewText(""),
		NewText("a"),
		NewText("b"),
		NewText("c", "bold"),
		&Link{URL: "u", Children: []*Text{NewText("")}},
		NewText("d", "italic"),
	}}
	b.normalize()

	require.Len(t, b.Inlines, 3)
	assert.Equal(t, "ab", b.Inlines[0].(*Text).Content, "equal-marked neighbors merge")
	assert.Equal(t, "c", b.Inlines[1].(*Text).Content, "differently marked runs stay apart")
	assert.Equal(t, "d", b.Inlines[2].(*Text).Content, "empty links drop out")
}

func TestBlockNormalizeMergesAcrossDroppedLink(t *testing.T) {
	b := &Block{Type: "paragraph", Inlines: []Inline{
		NewText("c", "bold"),
		&Link{URL: "u", Children: []*Text{NewText("")}},
		NewText("d", "bold"),
	}}
	b.normalize()

	require.Len(t, b.Inlines, 1)
	run := b.Inlines[0].(*Text)
	assert.Equal(t, "cd", run.Content, "a dropped link no longer separates equal-marked runs")
	assert.Equal(t, []string{"bold"}, run.Marks)
}

func TestBlockNormalizeKeepsOneEmptyRun(t *testing.T) {
	b := &Block{Type: "paragraph", Inlines: []Inline{NewText("")}}
	b.normalize()
	require.Len(t, b.Inlines, 1)
	assert.Equal(t, 0, b.Inlines[0].Len())
}

func TestBlockText(t *testing.T) {
	b := NewBlock("paragraph",
		NewText("one "),
		&Link{URL: "u", Children: []*Text{NewText("two")}},
		NewText(" three"),
	)
	assert.Equal(t, 13, b.textLen())
	assert.Equal(t, "one two three", b.text(0, 13))
	assert.Equal(t, "e two t", b.text(2, 9), "extraction spans link boundaries")
}
