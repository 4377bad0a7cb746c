package doctree

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mdedit/shorthand/shortcut"
)

// Observer receives one notification per outermost edit group, never for the
// intermediate states inside one.
type Observer interface {
	EditApplied(d *Document)
}

// ObserverFunc is a functional adaptor for Observer.
type ObserverFunc func(d *Document)

// EditApplied calls the receiver function pointer.
func (f ObserverFunc) EditApplied(d *Document) { f(d) }

// Document is an ordered tree of blocks with a selection, implementing
// shortcut.Document. It has exactly one writer at a time and is not safe for
// parallel use.
type Document struct {
	Blocks []*Block

	sel    shortcut.Range
	hasSel bool

	pending    []string // nil inherits from the caret run
	hasPending bool

	obs   Observer
	depth int
	dirty bool
}

// New builds a document over the given blocks; an empty document gets a
// single empty paragraph.
func New(blocks ...*Block) *Document {
	if len(blocks) == 0 {
		blocks = []*Block{NewBlock(shortcut.Paragraph)}
	}
	return &Document{Blocks: blocks}
}

// Observe registers the observer notified after each outermost edit group.
func (d *Document) Observe(o Observer) { d.obs = o }

// BeginEdit opens an edit group; groups nest and only the outermost close
// notifies the observer.
func (d *Document) BeginEdit() { d.depth++ }

// EndEdit closes an edit group.
func (d *Document) EndEdit() {
	if d.depth--; d.depth <= 0 {
		d.depth = 0
		if d.dirty {
			d.dirty = false
			if d.obs != nil {
				d.obs.EditApplied(d)
			}
		}
	}
}

// changed marks the current edit group dirty, notifying immediately when no
// group is open.
func (d *Document) changed() {
	d.dirty = true
	if d.depth == 0 {
		d.dirty = false
		if d.obs != nil {
			d.obs.EditApplied(d)
		}
	}
}

// node resolution

// leafBlock returns the leaf block addressed by the longest block prefix of
// p, along with that prefix.
func (d *Document) leafBlock(p shortcut.Path) (*Block, shortcut.Path) {
	if len(p) == 0 || p[0] < 0 || p[0] >= len(d.Blocks) {
		return nil, nil
	}
	b := d.Blocks[p[0]]
	i := 1
	for b.IsContainer() {
		if i >= len(p) || p[i] < 0 || p[i] >= len(b.Children) {
			return nil, nil
		}
		b = b.Children[p[i]]
		i++
	}
	return b, p[:i:i]
}

// blockAt returns the block addressed exactly by p.
func (d *Document) blockAt(p shortcut.Path) *Block {
	if len(p) == 0 || p[0] < 0 || p[0] >= len(d.Blocks) {
		return nil
	}
	b := d.Blocks[p[0]]
	for _, i := range p[1:] {
		if !b.IsContainer() || i < 0 || i >= len(b.Children) {
			return nil
		}
		b = b.Children[i]
	}
	return b
}

// pointAbs resolves a point to its leaf block and the absolute byte offset
// within that block's content.
func (d *Document) pointAbs(pt shortcut.Point) (*Block, shortcut.Path, int) {
	b, bpath := d.leafBlock(pt.Path)
	if b == nil {
		return nil, nil, 0
	}
	tail := pt.Path[len(bpath):]
	abs := 0
	for _, run := range b.runs() {
		if tailEqual(run.tail, tail) {
			return b, bpath, abs + pt.Offset
		}
		abs += run.text.Len()
	}
	// point addressed the block itself; treat the offset as absolute
	if len(tail) == 0 {
		return b, bpath, pt.Offset
	}
	return b, bpath, abs
}

// pointAt returns the point at an absolute offset within the block. An
// offset on a run boundary resolves to the end of the earlier run.
func (b *Block) pointAt(bpath shortcut.Path, abs int) shortcut.Point {
	runs := b.runs()
	for i, run := range runs {
		n := run.text.Len()
		if abs <= n || i == len(runs)-1 {
			if abs > n {
				abs = n
			}
			return shortcut.Point{Path: joinPath(bpath, run.tail), Offset: abs}
		}
		abs -= n
	}
	return shortcut.Point{Path: bpath.Child(0), Offset: 0}
}

func tailEqual(a, b []int) bool {
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

func joinPath(p shortcut.Path, tail []int) shortcut.Path {
	q := make(shortcut.Path, len(p)+len(tail))
	copy(q, p)
	copy(q[len(p):], tail)
	return q
}

// read surface

// Selection returns the current selection.
func (d *Document) Selection() (shortcut.Range, bool) { return d.sel, d.hasSel }

// Text extracts the content covered by a range. Both endpoints must lie in
// the same leaf block; an endpoint elsewhere is read as an offset within the
// anchor's block.
func (d *Document) Text(r shortcut.Range) string {
	b, _, lo := d.pointAbs(r.Anchor)
	if b == nil {
		return ""
	}
	_, _, hi := d.pointAbs(r.Focus)
	if lo > hi {
		lo, hi = hi, lo
	}
	return b.text(lo, hi)
}

// BlockStart returns the first text position of the leaf block containing p.
func (d *Document) BlockStart(p shortcut.Point) shortcut.Point {
	b, bpath := d.leafBlock(p.Path)
	if b == nil {
		return shortcut.Point{}
	}
	return b.pointAt(bpath, 0)
}

// Block returns the path and type of the leaf block containing p.
func (d *Document) Block(p shortcut.Point) (shortcut.Path, string) {
	b, bpath := d.leafBlock(p.Path)
	if b == nil {
		return nil, ""
	}
	return bpath, b.Type
}

// DefaultType names the base block type that backward outdent reverts to.
func (d *Document) DefaultType() string { return shortcut.Paragraph }

// write surface

// Select replaces the current selection.
func (d *Document) Select(r shortcut.Range) {
	d.sel = r
	d.hasSel = true
}

// Deselect drops the selection entirely.
func (d *Document) Deselect() { d.hasSel = false }

// SetPendingMarks sets the transient mark set that the next inserted text
// carries regardless of the marks at the caret.
func (d *Document) SetPendingMarks(marks ...string) {
	d.pending = append([]string(nil), marks...)
	d.hasPending = true
}

// ClearPendingMarks pins the next inserted text to no marks at all, so
// typing after a resolved emphasis shortcut is unmarked.
func (d *Document) ClearPendingMarks() { d.SetPendingMarks() }

// Delete removes the content covered by r. Selection endpoints after the
// span shift back, endpoints within it collapse to its start. Both endpoints
// must lie in the same leaf block; an endpoint elsewhere is read as an offset
// within the anchor's block.
func (d *Document) Delete(r shortcut.Range) {
	if r.Collapsed() {
		return
	}
	b, bpath, lo := d.pointAbs(r.Anchor)
	if b == nil {
		return
	}
	_, _, hi := d.pointAbs(r.Focus)
	if lo > hi {
		lo, hi = hi, lo
	}
	d.deleteAbs(b, bpath, lo, hi)
}

func (d *Document) deleteAbs(b *Block, bpath shortcut.Path, lo, hi int) {
	if lo >= hi {
		return
	}
	selA, selF, selOK := d.selAbs(b, bpath)

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
			run.text.Content = run.text.Content[:s] + run.text.Content[e:]
		}
		abs += n
	}
	b.normalize()

	if selOK {
		d.sel = shortcut.Range{
			Anchor: b.pointAt(bpath, deleteMap(selA, lo, hi)),
			Focus:  b.pointAt(bpath, deleteMap(selF, lo, hi)),
		}
	}
	d.changed()
}

func deleteMap(abs, lo, hi int) int {
	switch {
	case abs <= lo:
		return abs
	case abs >= hi:
		return abs - (hi - lo)
	default:
		return lo
	}
}

// selAbs captures the selection endpoints as absolute offsets when both lie
// within the given leaf block.
func (d *Document) selAbs(b *Block, bpath shortcut.Path) (a, f int, ok bool) {
	if !d.hasSel {
		return 0, 0, false
	}
	ab, _, a := d.pointAbs(d.sel.Anchor)
	fb, _, f := d.pointAbs(d.sel.Focus)
	return a, f, ab == b && fb == b
}

// SetType retypes the block at the given path.
func (d *Document) SetType(p shortcut.Path, typ string) {
	if b := d.blockAt(p); b != nil {
		b.Type = typ
		d.changed()
	}
}

// Wrap moves the block at the given path into a fresh container of the given
// type; positions under the block deepen by one level.
func (d *Document) Wrap(p shortcut.Path, containerType string) {
	b := d.blockAt(p)
	if b == nil {
		return
	}
	d.replaceBlock(p, NewContainer(containerType, b))
	if d.hasSel {
		d.sel.Anchor = wrapMap(d.sel.Anchor, p)
		d.sel.Focus = wrapMap(d.sel.Focus, p)
	}
	d.changed()
}

func wrapMap(pt shortcut.Point, wrapped shortcut.Path) shortcut.Point {
	if !pt.Path.HasPrefix(wrapped) {
		return pt
	}
	path := make(shortcut.Path, 0, len(pt.Path)+1)
	path = append(path, wrapped...)
	path = append(path, 0)
	path = append(path, pt.Path[len(wrapped):]...)
	return shortcut.Point{Path: path, Offset: pt.Offset}
}

func (d *Document) replaceBlock(p shortcut.Path, with *Block) {
	if len(p) == 1 {
		d.Blocks[p[0]] = with
		return
	}
	if parent := d.blockAt(p[:len(p)-1]); parent != nil {
		parent.Children[p[len(p)-1]] = with
	}
}

// AddMark applies a mark to the covered text, splitting the edge runs so
// only the covered spans carry it. Marks already present are unaffected.
func (d *Document) AddMark(r shortcut.Range, mark string) {
	b, bpath, lo := d.pointAbs(r.Anchor)
	if b == nil {
		return
	}
	_, _, hi := d.pointAbs(r.Focus)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return
	}
	selA, selF, selOK := d.selAbs(b, bpath)

	b.splitAt(lo)
	b.splitAt(hi)
	abs := 0
	for _, run := range b.runs() {
		n := run.text.Len()
		if abs >= lo && abs+n <= hi {
			run.text.addMark(mark)
		}
		abs += n
	}
	b.normalize()

	if selOK {
		d.sel = shortcut.Range{Anchor: b.pointAt(bpath, selA), Focus: b.pointAt(bpath, selF)}
	}
	d.changed()
}

// WrapLink moves the covered text into a link node with the given url. Runs
// already inside a covered link are absorbed into the new one.
func (d *Document) WrapLink(r shortcut.Range, url string) {
	b, bpath, lo := d.pointAbs(r.Anchor)
	if b == nil {
		return
	}
	_, _, hi := d.pointAbs(r.Focus)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return
	}
	selA, selF, selOK := d.selAbs(b, bpath)

	b.splitAt(lo)
	b.splitAt(hi)

	link := &Link{URL: url}
	kept := make([]Inline, 0, len(b.Inlines)+1)
	abs, placed := 0, false
	for _, in := range b.Inlines {
		n := in.Len()
		if abs >= lo && abs+n <= hi && n > 0 {
			switch node := in.(type) {
			case *Text:
				link.Children = append(link.Children, node)
			case *Link:
				link.Children = append(link.Children, node.Children...)
			}
			if !placed {
				kept = append(kept, link)
				placed = true
			}
		} else {
			kept = append(kept, in)
		}
		abs += n
	}
	b.Inlines = kept
	b.normalize()

	if selOK {
		d.sel = shortcut.Range{Anchor: b.pointAt(bpath, selA), Focus: b.pointAt(bpath, selF)}
	}
	d.changed()
}

// InsertText performs default insertion at the selection: a non-collapsed
// selection is replaced, then the text lands at the caret carrying either
// the pending marks or those of the caret run.
func (d *Document) InsertText(s string) {
	if s == "" {
		return
	}
	d.BeginEdit()
	defer d.EndEdit()

	if !d.hasSel {
		d.selectDocEnd()
	}
	if !d.sel.Collapsed() {
		d.Delete(d.sel)
	}
	b, bpath, abs := d.pointAbs(d.sel.Focus)
	if b == nil {
		return
	}

	marks, explicit := d.pending, d.hasPending
	d.pending, d.hasPending = nil, false

	run, off := b.runAt(abs)
	if !explicit || marksEqual(marks, run.text.Marks) {
		run.text.Content = run.text.Content[:off] + s + run.text.Content[off:]
	} else {
		b.splitAt(abs)
		d.insertRunAt(b, abs, NewText(s, marks...))
	}
	b.normalize()
	d.sel = shortcut.Caret(b.pointAt(bpath, abs+len(s)))
	d.changed()
}

// runAt locates the run containing an absolute offset, resolving boundary
// offsets to the end of the earlier run.
func (b *Block) runAt(abs int) (runRef, int) {
	runs := b.runs()
	for i, run := range runs {
		n := run.text.Len()
		if abs <= n || i == len(runs)-1 {
			if abs > n {
				abs = n
			}
			return run, abs
		}
		abs -= n
	}
	return runRef{text: &Text{}}, 0
}

// insertRunAt places a fresh run at the boundary offset abs. At the end of a
// link's content the run escapes to the block level, so unmarked typing does
// not extend the link.
func (d *Document) insertRunAt(b *Block, abs int, run *Text) {
	off := abs
	for i, in := range b.Inlines {
		n := in.Len()
		if off <= n {
			at := i
			if off == n {
				at = i + 1
			} else if link, ok := in.(*Link); ok {
				for j, t := range link.Children {
					if off <= t.Len() {
						lat := j
						if off == t.Len() {
							lat = j + 1
						}
						link.Children = append(link.Children, nil)
						copy(link.Children[lat+1:], link.Children[lat:])
						link.Children[lat] = run
						return
					}
					off -= t.Len()
				}
			}
			b.Inlines = append(b.Inlines, nil)
			copy(b.Inlines[at+1:], b.Inlines[at:])
			b.Inlines[at] = run
			return
		}
		off -= n
	}
	b.Inlines = append(b.Inlines, run)
}

// InsertBreak splits the caret's leaf block in two at the caret, keeping the
// block type; inside a list container the new block is a fresh sibling item.
func (d *Document) InsertBreak() {
	d.BeginEdit()
	defer d.EndEdit()

	if !d.hasSel {
		d.selectDocEnd()
	}
	if !d.sel.Collapsed() {
		d.Delete(d.sel)
	}
	b, bpath, abs := d.pointAbs(d.sel.Focus)
	if b == nil {
		return
	}

	b.splitAt(abs)
	head, tail := b.splitInlines(abs)
	b.Inlines = head
	b.normalize()
	next := NewBlock(b.Type, tail...)
	next.normalize()

	npath := d.insertBlockAfter(bpath, next)
	d.sel = shortcut.Caret(next.pointAt(npath, 0))
	d.changed()
}

// splitInlines divides the block's inlines at a boundary offset, splitting a
// link node in two when the boundary falls between its children.
func (b *Block) splitInlines(abs int) (head, tail []Inline) {
	off := abs
	for i, in := range b.Inlines {
		n := in.Len()
		if off < n {
			link, ok := in.(*Link)
			if !ok {
				// splitAt already put a boundary here
				return append([]Inline(nil), b.Inlines[:i]...), append([]Inline(nil), b.Inlines[i:]...)
			}
			for j, t := range link.Children {
				if off == 0 {
					rest := &Link{URL: link.URL, Children: link.Children[j:]}
					link.Children = link.Children[:j]
					head = append([]Inline(nil), b.Inlines[:i+1]...)
					tail = append([]Inline{rest}, b.Inlines[i+1:]...)
					return head, tail
				}
				off -= t.Len()
			}
			return append([]Inline(nil), b.Inlines[:i+1]...), append([]Inline(nil), b.Inlines[i+1:]...)
		}
		off -= n
	}
	return b.Inlines, nil
}

// insertBlockAfter places nb just after the block at bpath within the same
// parent, returning its path.
func (d *Document) insertBlockAfter(bpath shortcut.Path, nb *Block) shortcut.Path {
	i := bpath[len(bpath)-1] + 1
	if len(bpath) == 1 {
		d.Blocks = append(d.Blocks, nil)
		copy(d.Blocks[i+1:], d.Blocks[i:])
		d.Blocks[i] = nb
	} else if parent := d.blockAt(bpath[:len(bpath)-1]); parent != nil {
		parent.Children = append(parent.Children, nil)
		copy(parent.Children[i+1:], parent.Children[i:])
		parent.Children[i] = nb
	}
	npath := append(shortcut.Path(nil), bpath...)
	npath[len(npath)-1] = i
	return npath
}

// DeleteBackward performs ordinary backward deletion: one rune behind the
// caret, or at a block start a merge of the block into the previous leaf.
func (d *Document) DeleteBackward() {
	d.BeginEdit()
	defer d.EndEdit()

	if !d.hasSel {
		return
	}
	if !d.sel.Collapsed() {
		d.Delete(d.sel)
		return
	}
	b, bpath, abs := d.pointAbs(d.sel.Focus)
	if b == nil {
		return
	}
	if abs > 0 {
		_, size := utf8.DecodeLastRuneInString(b.text(0, abs))
		d.deleteAbs(b, bpath, abs-size, abs)
		return
	}
	d.mergeBack(b, bpath)
}

// mergeBack merges a leaf block into the previous leaf in document order,
// pruning any container emptied by the move. At the start of the document it
// is a no-op.
func (d *Document) mergeBack(b *Block, bpath shortcut.Path) {
	leaves := d.leaves()
	at := -1
	for i, lf := range leaves {
		if lf.path.Equal(bpath) {
			at = i
			break
		}
	}
	if at <= 0 {
		return
	}
	prev := leaves[at-1]
	n := prev.block.textLen()

	prev.block.Inlines = append(prev.block.Inlines, b.Inlines...)
	prev.block.normalize()
	d.removeBlock(bpath)

	d.sel = shortcut.Caret(prev.block.pointAt(prev.path, n))
	d.changed()
}

type leafRef struct {
	block *Block
	path  shortcut.Path
}

// leaves returns the leaf blocks in document order.
func (d *Document) leaves() []leafRef {
	var out []leafRef
	var walk func(b *Block, p shortcut.Path)
	walk = func(b *Block, p shortcut.Path) {
		if !b.IsContainer() {
			out = append(out, leafRef{b, p})
			return
		}
		for i, c := range b.Children {
			walk(c, p.Child(i))
		}
	}
	for i, b := range d.Blocks {
		walk(b, shortcut.Path{i})
	}
	return out
}

// removeBlock removes the block at the given path, pruning containers left
// empty.
func (d *Document) removeBlock(p shortcut.Path) {
	i := p[len(p)-1]
	if len(p) == 1 {
		d.Blocks = append(d.Blocks[:i], d.Blocks[i+1:]...)
		return
	}
	parent := d.blockAt(p[:len(p)-1])
	if parent == nil {
		return
	}
	parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
	if len(parent.Children) == 0 {
		d.removeBlock(p[:len(p)-1])
	}
}

// SelectEnd places the caret at the end of the last leaf block.
func (d *Document) SelectEnd() { d.selectDocEnd() }

// selectDocEnd places the caret at the end of the last leaf block.
func (d *Document) selectDocEnd() {
	leaves := d.leaves()
	last := leaves[len(leaves)-1]
	d.sel = shortcut.Caret(last.block.pointAt(last.path, last.block.textLen()))
	d.hasSel = true
}

// Validate checks stored tree invariants, returning the first violation.
func (d *Document) Validate() error {
	if len(d.Blocks) == 0 {
		return errors.New("document has no blocks")
	}
	var check func(b *Block, p shortcut.Path, parent string) error
	check = func(b *Block, p shortcut.Path, parent string) error {
		if b.Type == shortcut.ListItem && parent != shortcut.BulletedList && parent != shortcut.NumberedList {
			return fmt.Errorf("list-item at %v outside a list container", p)
		}
		if b.IsContainer() {
			if len(b.Inlines) > 0 {
				return fmt.Errorf("container at %v holds inline content", p)
			}
			if len(b.Children) == 0 {
				return fmt.Errorf("empty container at %v", p)
			}
			for i, c := range b.Children {
				if err := check(c, p.Child(i), b.Type); err != nil {
					return err
				}
			}
			return nil
		}
		if len(b.Inlines) == 0 {
			return fmt.Errorf("leaf block at %v has no runs", p)
		}
		for i, in := range b.Inlines {
			switch n := in.(type) {
			case *Text:
				if n.Len() == 0 && len(b.Inlines) > 1 {
					return fmt.Errorf("empty run at %v[%v]", p, i)
				}
			case *Link:
				if len(n.Children) == 0 {
					return fmt.Errorf("empty link at %v[%v]", p, i)
				}
				for j, t := range n.Children {
					if t.Len() == 0 {
						return fmt.Errorf("empty link run at %v[%v][%v]", p, i, j)
					}
				}
			}
		}
		return nil
	}
	for i, b := range d.Blocks {
		if err := check(b, shortcut.Path{i}, ""); err != nil {
			return err
		}
	}
	return nil
}
