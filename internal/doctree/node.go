// Package doctree provides an in-memory document tree implementing the host
// surface that the shortcut engine edits through: typed blocks over inline
// text runs and links, with a caret/selection, pending-mark state, and
// coalesced edit notification.
package doctree

import "sort"

// Inline is a node directly under a leaf block: a Text run or a Link.
type Inline interface {
	// Len returns the total content byte length under the node.
	Len() int
}

// Text is a leaf run of content carrying a set of boolean marks.
type Text struct {
	Content string
	Marks   []string // sorted, no duplicates
}

// Len returns the content byte length.
func (t *Text) Len() int { return len(t.Content) }

// HasMark reports whether the run carries the named mark.
func (t *Text) HasMark(name string) bool {
	i := sort.SearchStrings(t.Marks, name)
	return i < len(t.Marks) && t.Marks[i] == name
}

// addMark adds the named mark; adding a mark the run already carries is a
// no-op, marks are idempotent booleans.
func (t *Text) addMark(name string) {
	if i := sort.SearchStrings(t.Marks, name); i >= len(t.Marks) || t.Marks[i] != name {
		t.Marks = append(t.Marks, "")
		copy(t.Marks[i+1:], t.Marks[i:])
		t.Marks[i] = name
	}
}

func marksEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Link is an inline container wrapping text runs under a url; it is a node,
// not a mark.
type Link struct {
	URL      string
	Children []*Text
}

// Len returns the total content byte length of the wrapped runs.
func (l *Link) Len() (n int) {
	for _, t := range l.Children {
		n += len(t.Content)
	}
	return n
}

// Block is a structural node: either a leaf holding ordered Inlines, or a
// container ( Children non-nil ) holding nested blocks.
type Block struct {
	Type     string
	Children []*Block
	Inlines  []Inline
}

// NewText builds a text run with the given marks.
func NewText(content string, marks ...string) *Text {
	sort.Strings(marks)
	return &Text{Content: content, Marks: marks}
}

// NewBlock builds a leaf block; a block with no inlines gets a single empty
// run so it always has a text position.
func NewBlock(typ string, inlines ...Inline) *Block {
	if len(inlines) == 0 {
		inlines = []Inline{&Text{}}
	}
	return &Block{Type: typ, Inlines: inlines}
}

// NewContainer builds a container block over the given children.
func NewContainer(typ string, children ...*Block) *Block {
	if children == nil {
		children = []*Block{}
	}
	return &Block{Type: typ, Children: children}
}

// IsContainer reports whether the block holds nested blocks rather than
// inline content.
func (b *Block) IsContainer() bool { return b.Children != nil }

// runRef locates one text run within a leaf block: tail is the child index
// path below the block ( one index for a top-level run, two through a link ).
type runRef struct {
	text *Text
	link *Link // non-nil when the run is a link child
	tail []int
}

// runs returns the block's text runs in content order.
func (b *Block) runs() []runRef {
	refs := make([]runRef, 0, len(b.Inlines))
	for i, in := range b.Inlines {
		switch n := in.(type) {
		case *Text:
			refs = append(refs, runRef{text: n, tail: []int{i}})
		case *Link:
			for j, t := range n.Children {
				refs = append(refs, runRef{text: t, link: n, tail: []int{i, j}})
			}
		}
	}
	return refs
}

// textLen returns the total content byte length of the leaf block.
func (b *Block) textLen() (n int) {
	for _, in := range b.Inlines {
		n += in.Len()
	}
	return n
}

// text returns the block content between two absolute offsets.
func (b *Block) text(lo, hi int) string {
	var out []byte
	abs := 0
	for _, run := range b.runs() {
		n := run.text.Len()
		s, e := lo-abs, hi-abs
		if s < 0 {
			s = 0
		}
		if e > n {
			e = n
		}
		if s < e {
			out = append(out, run.text.Content[s:e]...)
		}
		abs += n
	}
	return string(out)
}

// splitAt splits the run containing the given absolute offset so that a run
// boundary falls exactly there. Offsets already on a boundary are left
// alone. Splitting happens within the run's container: a top-level run
// splits into two top-level runs, a link child into two link children.
func (b *Block) splitAt(abs int) {
	off := abs
	for i, in := range b.Inlines {
		switch n := in.(type) {
		case *Text:
			if off > 0 && off < n.Len() {
				pre := &Text{Content: n.Content[:off], Marks: n.Marks}
				n.Content = n.Content[off:]
				n.Marks = append([]string(nil), n.Marks...)
				b.Inlines = append(b.Inlines, nil)
				copy(b.Inlines[i+1:], b.Inlines[i:])
				b.Inlines[i] = pre
				return
			}
		case *Link:
			for j, t := range n.Children {
				if off > 0 && off < t.Len() {
					pre := &Text{Content: t.Content[:off], Marks: t.Marks}
					t.Content = t.Content[off:]
					t.Marks = append([]string(nil), t.Marks...)
					n.Children = append(n.Children, nil)
					copy(n.Children[j+1:], n.Children[j:])
					n.Children[j] = pre
					return
				}
				off -= t.Len()
			}
			continue
		}
		if off -= in.Len(); off <= 0 {
			return
		}
	}
}

// normalize restores the stored-run invariants after an edit: empty runs and
// empty links are dropped, adjacent runs with equal marks merge, and a block
// left with no content keeps a single empty run.
func (b *Block) normalize() {
	kept := b.Inlines[:0]
	for _, in := range b.Inlines {
		switch n := in.(type) {
		case *Text:
			if n.Len() == 0 {
				continue
			}
			if prev, ok := lastText(kept); ok && marksEqual(prev.Marks, n.Marks) {
				prev.Content += n.Content
				continue
			}
		case *Link:
			children := n.Children[:0]
			for _, t := range n.Children {
				if t.Len() == 0 {
					continue
				}
				if len(children) > 0 && marksEqual(children[len(children)-1].Marks, t.Marks) {
					children[len(children)-1].Content += t.Content
					continue
				}
				children = append(children, t)
			}
			n.Children = children
			if len(children) == 0 {
				continue
			}
		}
		kept = append(kept, in)
	}
	if len(kept) == 0 {
		kept = append(kept, &Text{})
	}
	b.Inlines = kept
}

func lastText(inlines []Inline) (*Text, bool) {
	if len(inlines) == 0 {
		return nil, false
	}
	t, ok := inlines[len(inlines)-1].(*Text)
	return t, ok
}
