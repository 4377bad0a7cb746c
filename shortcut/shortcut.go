/* Package shortcut implements live markdown-style autoformat shortcuts over a
host-provided document tree.

As the user types, the engine recognizes trigger sequences ( like `# `, `- `,
`**bold**`, or `[text](url)` ) and rewrites document structure in place of the
literal markdown characters: the block prefix is deleted and the block retyped,
or the delimiters are trimmed and the inner text marked or wrapped. A
companion backward-delete rule outdents a block shortcut before falling back
to ordinary deletion.

The engine owns no document state. It reads and mutates through the Document
interface, one keystroke at a time, and every decision point degrades to the
host's default behavior on non-match.

*/
package shortcut

// Path addresses a node within the host document tree as a sequence of child
// indexes from the root.
type Path []int

// Equal reports whether p and q address the same node.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is p or an ancestor of p.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equal(q)
}

// Child returns a copy of p extended by one child index.
func (p Path) Child(i int) Path {
	q := make(Path, len(p)+1)
	copy(q, p)
	q[len(p)] = i
	return q
}

// Point is a position within the document: a path to a text-bearing node and
// a byte offset into its content.
type Point struct {
	Path   Path
	Offset int
}

// Equal reports whether two points address the same position.
func (pt Point) Equal(o Point) bool {
	return pt.Offset == o.Offset && pt.Path.Equal(o.Path)
}

// Range is an ordered anchor/focus pair of points. A collapsed range, anchor
// equal to focus, is a pure caret.
type Range struct {
	Anchor, Focus Point
}

// Caret returns a collapsed range at the given point.
func Caret(pt Point) Range { return Range{Anchor: pt, Focus: pt} }

// Collapsed reports whether the range selects no span.
func (r Range) Collapsed() bool { return r.Anchor.Equal(r.Focus) }

// Document is the ( read and write ) surface the engine requires of its host.
// All write operations are treated as total for the well-formed in-bounds
// ranges the engine constructs; a host that cannot satisfy one has violated
// its own invariants.
type Document interface {
	// Selection returns the current selection, or ok=false when the host has
	// none ( no focus, no caret ).
	Selection() (sel Range, ok bool)
	// Text extracts the content string covered by a range within one block.
	Text(r Range) string
	// BlockStart returns the first text position of the leaf block
	// containing p.
	BlockStart(p Point) Point
	// Block returns the path and type of the leaf block containing p.
	Block(p Point) (Path, string)
	// DefaultType names the host's base block type.
	DefaultType() string

	// Select replaces the current selection.
	Select(r Range)
	// Delete removes the content covered by r, collapsing any selection
	// endpoints within it.
	Delete(r Range)
	// SetType retypes the block at the given path.
	SetType(block Path, typ string)
	// Wrap moves the block at the given path into a fresh container block of
	// the given type.
	Wrap(block Path, containerType string)
	// AddMark applies a mark to the text covered by r, splitting runs at the
	// range boundaries so that only the covered text carries it. Marks are
	// idempotent booleans, never stacked.
	AddMark(r Range, mark string)
	// WrapLink moves the text covered by r into a link node with the given
	// url.
	WrapLink(r Range, url string)
	// ClearPendingMarks resets the transient mark state governing the next
	// typed character, so typing after a resolved shortcut is unmarked.
	ClearPendingMarks()
	// InsertText performs the host's default text insertion at the current
	// selection.
	InsertText(s string)
	// DeleteBackward performs the host's default backward deletion, which
	// may merge the current block into the previous one at a block boundary.
	DeleteBackward()
}

// Batcher is an optional Document upgrade: a host that implements it has all
// edits of one resolved shortcut bracketed into a single logical edit step,
// so downstream observers never see a half-edited document.
type Batcher interface {
	BeginEdit()
	EndEdit()
}

// beginEdit brackets an edit group on doc if it supports batching, returning
// the matching end.
func beginEdit(doc Document) func() {
	if b, ok := doc.(Batcher); ok {
		b.BeginEdit()
		return b.EndEdit
	}
	return func() {}
}
