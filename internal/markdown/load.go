// Package markdown converts between markdown text and the doctree document
// model on behalf of hosts. The shortcut engine itself never parses: loading
// an initial document from a file is host behavior, as is rendering one back
// out for display or save.
package markdown

import (
	"strings"

	"github.com/russross/blackfriday"

	"github.com/mdedit/shorthand/internal/doctree"
	"github.com/mdedit/shorthand/shortcut"
)

// Parse builds a document from markdown source. Structures beyond the
// document model ( rulers, HTML blocks, tables ) are dropped; fenced and
// indented code becomes a code-marked paragraph. Adjacent lists of different
// kinds separated only by a blank line come back from the underlying parser
// as a single List node, so they load as one container of the first list's
// kind; intervening non-list content keeps them separate.
func Parse(src []byte) *doctree.Document {
	md := blackfriday.New(blackfriday.WithExtensions(0 |
		blackfriday.NoIntraEmphasis |
		blackfriday.FencedCode |
		blackfriday.SpaceHeadings,
	))
	var b builder
	md.Parse(src).Walk(b.visit)
	b.flush()
	for len(b.stack) > 0 {
		b.closeList()
	}
	return doctree.New(b.blocks...)
}

// builder accumulates doctree blocks while walking blackfriday's node tree.
type builder struct {
	blocks []*doctree.Block
	stack  []*doctree.Block // open list containers

	leafType string
	leafOpen bool
	inlines  []doctree.Inline

	link         *doctree.Link
	bold, italic int
	quote        int
}

func (b *builder) visit(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Heading:
		if entering {
			b.open(headingType(node.Level))
		} else {
			b.flush()
		}

	case blackfriday.BlockQuote:
		if entering {
			b.quote++
		} else {
			b.quote--
		}

	case blackfriday.Paragraph:
		if entering {
			if !b.leafOpen {
				typ := shortcut.Paragraph
				if b.quote > 0 {
					typ = shortcut.BlockQuote
				}
				b.open(typ)
			}
		} else if b.leafOpen && b.leafType != shortcut.ListItem {
			// item paragraphs stay open until the item closes
			b.flush()
		}

	case blackfriday.List:
		if entering {
			b.flush()
			typ := shortcut.BulletedList
			if node.ListFlags&blackfriday.ListTypeOrdered != 0 {
				typ = shortcut.NumberedList
			}
			b.stack = append(b.stack, doctree.NewContainer(typ))
		} else {
			b.closeList()
		}

	case blackfriday.Item:
		if entering {
			b.open(shortcut.ListItem)
		} else {
			b.flush()
		}

	case blackfriday.Strong:
		if entering {
			b.bold++
		} else {
			b.bold--
		}

	case blackfriday.Emph:
		if entering {
			b.italic++
		} else {
			b.italic--
		}

	case blackfriday.Link:
		if entering {
			b.link = &doctree.Link{URL: string(node.Destination)}
		} else {
			if b.link != nil && len(b.link.Children) > 0 {
				b.inlines = append(b.inlines, b.link)
			}
			b.link = nil
		}

	case blackfriday.Text:
		b.addRun(strings.ReplaceAll(string(node.Literal), "\n", " "))

	case blackfriday.Softbreak, blackfriday.Hardbreak:
		b.addRun(" ")

	case blackfriday.Code:
		b.addRun(string(node.Literal), shortcut.Code)

	case blackfriday.CodeBlock:
		b.flush()
		b.open(shortcut.Paragraph)
		b.addRun(strings.TrimRight(string(node.Literal), "\n"), shortcut.Code)
		b.flush()
		return blackfriday.SkipChildren
	}
	return blackfriday.GoToNext
}

func headingType(level int) string {
	switch level {
	case 1:
		return shortcut.HeadingOne
	case 2:
		return shortcut.HeadingTwo
	}
	return shortcut.HeadingThree
}

// open flushes any open leaf and starts a new one of the given type.
func (b *builder) open(typ string) {
	b.flush()
	b.leafType = typ
	b.leafOpen = true
}

// flush closes the open leaf block, if any, into the enclosing container or
// the document.
func (b *builder) flush() {
	if !b.leafOpen {
		return
	}
	blk := doctree.NewBlock(b.leafType, b.inlines...)
	b.leafOpen = false
	b.inlines = nil
	b.appendBlock(blk)
}

func (b *builder) closeList() {
	b.flush()
	c := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.appendBlock(c)
}

func (b *builder) appendBlock(blk *doctree.Block) {
	if n := len(b.stack); n > 0 {
		b.stack[n-1].Children = append(b.stack[n-1].Children, blk)
		return
	}
	b.blocks = append(b.blocks, blk)
}

// addRun appends a text run carrying the current mark state plus any extras.
func (b *builder) addRun(content string, extra ...string) {
	if content == "" {
		return
	}
	marks := append([]string(nil), extra...)
	if b.bold > 0 {
		marks = append(marks, shortcut.Bold)
	}
	if b.italic > 0 {
		marks = append(marks, shortcut.Italic)
	}
	run := doctree.NewText(content, marks...)
	if b.link != nil {
		b.link.Children = append(b.link.Children, run)
		return
	}
	b.inlines = append(b.inlines, run)
}
