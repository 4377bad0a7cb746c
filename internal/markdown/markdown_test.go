package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdedit/shorthand/internal/doctree"
	"github.com/mdedit/shorthand/internal/markdown"
	"github.com/mdedit/shorthand/shortcut"
)

func TestParseBlocks(t *testing.T) {
	doc := markdown.Parse([]byte("# Title\n\nHello **there** _friend_.\n\n> quoted\n"))
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Blocks, 3)

	assert.Equal(t, shortcut.HeadingOne, doc.Blocks[0].Type)
	assert.Equal(t, "Title", doc.Blocks[0].Inlines[0].(*doctree.Text).Content)

	para := doc.Blocks[1]
	assert.Equal(t, shortcut.Paragraph, para.Type)
	require.Len(t, para.Inlines, 5)
	assert.Equal(t, []string{shortcut.Bold}, para.Inlines[1].(*doctree.Text).Marks)
	assert.Equal(t, "there", para.Inlines[1].(*doctree.Text).Content)
	assert.Equal(t, []string{shortcut.Italic}, para.Inlines[3].(*doctree.Text).Marks)

	assert.Equal(t, shortcut.BlockQuote, doc.Blocks[2].Type)
}

func TestParseDeepHeadingsClamp(t *testing.T) {
	doc := markdown.Parse([]byte("### three\n\n##### five\n"))
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, shortcut.HeadingThree, doc.Blocks[0].Type)
	assert.Equal(t, shortcut.HeadingThree, doc.Blocks[1].Type)
}

func TestParseLists(t *testing.T) {
	doc := markdown.Parse([]byte("- one\n- two\n\nbetween\n\n1. first\n2. second\n"))
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Blocks, 3)

	ul := doc.Blocks[0]
	require.True(t, ul.IsContainer())
	assert.Equal(t, shortcut.BulletedList, ul.Type)
	require.Len(t, ul.Children, 2)
	assert.Equal(t, shortcut.ListItem, ul.Children[0].Type)
	assert.Equal(t, "one", ul.Children[0].Inlines[0].(*doctree.Text).Content)

	assert.Equal(t, shortcut.Paragraph, doc.Blocks[1].Type)

	ol := doc.Blocks[2]
	assert.Equal(t, shortcut.NumberedList, ol.Type)
	require.Len(t, ol.Children, 2)
	assert.Equal(t, "second", ol.Children[1].Inlines[0].(*doctree.Text).Content)
}

func TestParseAdjacentListsMergeIntoFirstKind(t *testing.T) {
	// with only a blank line between them the parser hands back one List
	// node spanning all four items, so the numbered items land in the
	// bulleted container
	doc := markdown.Parse([]byte("- one\n- two\n\n1. first\n2. second\n"))
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Blocks, 1)

	ul := doc.Blocks[0]
	require.True(t, ul.IsContainer())
	assert.Equal(t, shortcut.BulletedList, ul.Type)
	require.Len(t, ul.Children, 4)
	assert.Equal(t, "one", ul.Children[0].Inlines[0].(*doctree.Text).Content)
	assert.Equal(t, "second", ul.Children[3].Inlines[0].(*doctree.Text).Content)
}

func TestParseLinkAndCode(t *testing.T) {
	doc := markdown.Parse([]byte("see [the docs](https://example.com) and `x := 1`\n"))
	require.Len(t, doc.Blocks, 1)
	inlines := doc.Blocks[0].Inlines
	require.Len(t, inlines, 4)

	link, ok := inlines[1].(*doctree.Link)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", link.URL)
	assert.Equal(t, "the docs", link.Children[0].Content)

	code := inlines[3].(*doctree.Text)
	assert.Equal(t, "x := 1", code.Content)
	assert.Equal(t, []string{shortcut.Code}, code.Marks)
}

func TestParseCodeBlockBecomesCodeRun(t *testing.T) {
	doc := markdown.Parse([]byte("```\nfmt.Println()\n```\n"))
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, shortcut.Paragraph, doc.Blocks[0].Type)
	run := doc.Blocks[0].Inlines[0].(*doctree.Text)
	assert.Equal(t, "fmt.Println()", run.Content)
	assert.True(t, run.HasMark(shortcut.Code))
}

func TestParseEmpty(t *testing.T) {
	doc := markdown.Parse(nil)
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Blocks, 1, "an empty source still yields an editable block")
	assert.Equal(t, shortcut.Paragraph, doc.Blocks[0].Type)
}

func TestWrite(t *testing.T) {
	doc := doctree.New(
		doctree.NewBlock(shortcut.HeadingTwo, doctree.NewText("Notes")),
		doctree.NewBlock(shortcut.Paragraph,
			doctree.NewText("plain "),
			doctree.NewText("strong", shortcut.Bold),
			doctree.NewText(" then "),
			&doctree.Link{URL: "https://x.dev", Children: []*doctree.Text{doctree.NewText("a link")}},
		),
		doctree.NewContainer(shortcut.NumberedList,
			doctree.NewBlock(shortcut.ListItem, doctree.NewText("first")),
			doctree.NewBlock(shortcut.ListItem, doctree.NewText("second", shortcut.Italic)),
		),
		doctree.NewBlock(shortcut.BlockQuote, doctree.NewText("said so")),
	)

	assert.Equal(t, ""+
		"## Notes\n"+
		"\n"+
		"plain **strong** then [a link](https://x.dev)\n"+
		"\n"+
		"1. first\n"+
		"2. _second_\n"+
		"\n"+
		"> said so\n",
		markdown.String(doc))
}

func TestWriteNestedMarks(t *testing.T) {
	doc := doctree.New(doctree.NewBlock(shortcut.Paragraph,
		doctree.NewText("both", shortcut.Bold, shortcut.Italic)))
	assert.Equal(t, "**_both_**\n", markdown.String(doc))
}

func TestRoundTrip(t *testing.T) {
	const src = "# Title\n\nHello **world** and [docs](https://example.com)\n\n- one\n- _two_\n"
	doc := markdown.Parse([]byte(src))
	require.NoError(t, doc.Validate())
	assert.Equal(t, src, markdown.String(doc))
}
