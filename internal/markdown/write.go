package markdown

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mdedit/shorthand/internal/doctree"
	"github.com/mdedit/shorthand/shortcut"
)

// Write renders the document as markdown text, one blank line between
// top-level blocks.
func Write(w io.Writer, d *doctree.Document) error {
	var buf bytes.Buffer
	for i, b := range d.Blocks {
		if i > 0 {
			buf.WriteByte('\n')
		}
		writeBlock(&buf, b, "")
	}
	_, err := buf.WriteTo(w)
	return err
}

// String renders the document as markdown text.
func String(d *doctree.Document) string {
	var buf bytes.Buffer
	Write(&buf, d) // buffer writes cannot fail
	return buf.String()
}

func writeBlock(buf *bytes.Buffer, b *doctree.Block, indent string) {
	if b.IsContainer() {
		ordered := b.Type == shortcut.NumberedList
		for i, c := range b.Children {
			if c.IsContainer() {
				writeBlock(buf, c, indent+"  ")
				continue
			}
			buf.WriteString(indent)
			if ordered {
				fmt.Fprintf(buf, "%d. ", i+1)
			} else {
				buf.WriteString("- ")
			}
			writeInlines(buf, c.Inlines)
			buf.WriteByte('\n')
		}
		return
	}

	buf.WriteString(indent)
	switch b.Type {
	case shortcut.HeadingOne:
		buf.WriteString("# ")
	case shortcut.HeadingTwo:
		buf.WriteString("## ")
	case shortcut.HeadingThree:
		buf.WriteString("### ")
	case shortcut.BlockQuote:
		buf.WriteString("> ")
	}
	writeInlines(buf, b.Inlines)
	buf.WriteByte('\n')
}

func writeInlines(buf *bytes.Buffer, inlines []doctree.Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *doctree.Text:
			writeRun(buf, n)
		case *doctree.Link:
			buf.WriteByte('[')
			for _, t := range n.Children {
				writeRun(buf, t)
			}
			buf.WriteString("](")
			buf.WriteString(n.URL)
			buf.WriteByte(')')
		}
	}
}

// writeRun wraps the run content in delimiters for its marks, bold outside
// italic outside code.
func writeRun(buf *bytes.Buffer, t *doctree.Text) {
	var pre, post string
	if t.HasMark(shortcut.Bold) {
		pre, post = pre+"**", "**"+post
	}
	if t.HasMark(shortcut.Italic) {
		pre, post = pre+"_", "_"+post
	}
	if t.HasMark(shortcut.Code) {
		pre, post = pre+"`", "`"+post
	}
	buf.WriteString(pre)
	buf.WriteString(t.Content)
	buf.WriteString(post)
}
