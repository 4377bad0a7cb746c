package doctree

import (
	"fmt"
	"io"
	"strings"
)

// Format writes a textual representation of the document, providing improved
// fmt.Printf display. Produces an indented multi-line form under `%+v`, a
// terse single-line form otherwise; `%s` gets the `%v` rendering so assertion
// and log output stays readable.
func (d *Document) Format(f fmt.State, c rune) {
	switch c {
	case 'v', 's':
		for i, b := range d.Blocks {
			if i > 0 {
				if f.Flag('+') {
					io.WriteString(f, "\n")
				} else {
					io.WriteString(f, " ")
				}
			}
			b.format(f, f.Flag('+'), 0)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

// Format writes a textual representation of one block.
func (b *Block) Format(f fmt.State, c rune) {
	switch c {
	case 'v', 's':
		b.format(f, f.Flag('+'), 0)
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

func (b *Block) format(w io.Writer, verbose bool, depth int) {
	if verbose {
		io.WriteString(w, strings.Repeat("  ", depth))
	}
	fmt.Fprintf(w, "<%s>", b.Type)
	if b.IsContainer() {
		for _, c := range b.Children {
			if verbose {
				io.WriteString(w, "\n")
			} else {
				io.WriteString(w, " ")
			}
			c.format(w, verbose, depth+1)
		}
		return
	}
	for _, in := range b.Inlines {
		io.WriteString(w, " ")
		formatInline(w, in)
	}
}

func formatInline(w io.Writer, in Inline) {
	switch n := in.(type) {
	case *Text:
		if len(n.Marks) > 0 {
			fmt.Fprintf(w, "%q/%s", n.Content, strings.Join(n.Marks, ","))
		} else {
			fmt.Fprintf(w, "%q", n.Content)
		}
	case *Link:
		fmt.Fprintf(w, "link(%s)[", n.URL)
		for i, t := range n.Children {
			if i > 0 {
				io.WriteString(w, " ")
			}
			formatInline(w, t)
		}
		io.WriteString(w, "]")
	}
}
