package shortcut

// Engine holds the two shortcut tables. The zero value matches nothing; New
// returns one loaded with the default tables.
//
// An Engine is stateless between keystrokes and safe to share across
// documents, though each document must be driven from a single goroutine.
type Engine struct {
	Blocks  []BlockRule
	Inlines []InlineRule
}

// New returns an Engine loaded with copies of DefaultBlockRules and
// DefaultInlineRules.
func New() *Engine {
	return &Engine{
		Blocks:  append([]BlockRule(nil), DefaultBlockRules...),
		Inlines: append([]InlineRule(nil), DefaultInlineRules...),
	}
}

// InsertText handles one character-insertion keystroke: s is the in-flight
// character, not yet committed to the document. If a block or inline
// shortcut resolves, the document is transformed and true is returned; the
// in-flight character is consumed by the transformation ( a block trigger
// space, or the final closing delimiter character ) and never inserted.
// Otherwise the default insertion is performed and false returned.
func (eng *Engine) InsertText(doc Document, s string) bool {
	sel, ok := doc.Selection()
	if !ok || !sel.Collapsed() {
		doc.InsertText(s)
		return false
	}
	caret := sel.Focus

	// Space completes a line prefix; a block match short-circuits inline
	// resolution for this keystroke.
	if s == " " {
		start := doc.BlockStart(caret)
		if rule, ok := matchBlock(eng.Blocks, doc.Text(Range{Anchor: start, Focus: caret})); ok {
			eng.applyBlock(doc, rule, start, caret)
			return true
		}
	}

	runStart := Point{Path: caret.Path, Offset: 0}
	text := doc.Text(Range{Anchor: runStart, Focus: caret}) + s
	if rule, m, ok := matchInline(eng.Inlines, text); ok {
		if rule.Kind == Link {
			eng.applyLink(doc, caret, text, m)
		} else {
			eng.applyMark(doc, rule.Kind, caret, m)
		}
		return true
	}

	doc.InsertText(s)
	return false
}

// DeleteBackward handles one backward-deletion keystroke. With the caret at
// the start of a block whose type is neither the host default nor list-item,
// the keystroke is consumed as an outdent: the block reverts to the default
// type and nothing is deleted. Otherwise the host's ordinary backward
// deletion runs.
func (eng *Engine) DeleteBackward(doc Document) bool {
	if sel, ok := doc.Selection(); ok && sel.Collapsed() {
		caret := sel.Focus
		block, typ := doc.Block(caret)
		if caret.Equal(doc.BlockStart(caret)) && typ != doc.DefaultType() && typ != ListItem {
			end := beginEdit(doc)
			doc.SetType(block, doc.DefaultType())
			end()
			return true
		}
	}
	doc.DeleteBackward()
	return false
}

// applyBlock deletes the matched line prefix and retypes the enclosing
// block, wrapping it in a fresh list container for list rules.
func (eng *Engine) applyBlock(doc Document, rule BlockRule, start, caret Point) {
	end := beginEdit(doc)
	defer end()

	prefix := Range{Anchor: start, Focus: caret}
	block, _ := doc.Block(start)
	doc.Select(prefix)
	doc.Delete(prefix)
	doc.SetType(block, rule.Type)
	if rule.Container != "" {
		doc.Wrap(block, rule.Container)
	}
}

// applyMark trims the delimiters around the matched inner text and marks it.
// The final character of the closing delimiter is the in-flight keystroke
// and was never committed, so one byte less is deleted on the closing side.
func (eng *Engine) applyMark(doc Document, mark string, caret Point, m []int) {
	openLen, innerLen, closeLen := m[3]-m[2], m[5]-m[4], m[7]-m[6]

	end := beginEdit(doc)
	defer end()

	at := caret.Offset
	deleteBehind(doc, caret.Path, at, closeLen-1)
	at -= closeLen - 1
	deleteBehind(doc, caret.Path, at-innerLen, openLen)
	at -= openLen

	inner := Range{
		Anchor: Point{Path: caret.Path, Offset: at - innerLen},
		Focus:  Point{Path: caret.Path, Offset: at},
	}
	doc.AddMark(inner, mark)
	doc.ClearPendingMarks()
}

// applyLink trims the bracket and url delimiters around the matched link
// text and wraps it in a link node carrying the captured url. As with
// applyMark, the final close paren is the uncommitted in-flight keystroke.
func (eng *Engine) applyLink(doc Document, caret Point, text string, m []int) {
	openLen, textLen := m[3]-m[2], m[5]-m[4]
	midLen, urlLen, closeLen := m[7]-m[6], m[9]-m[8], m[11]-m[10]
	url := text[m[8]:m[9]]

	end := beginEdit(doc)
	defer end()

	at := caret.Offset
	deleteBehind(doc, caret.Path, at, midLen+urlLen+closeLen-1)
	at -= midLen + urlLen + closeLen - 1
	deleteBehind(doc, caret.Path, at-textLen, openLen)
	at -= openLen

	doc.WrapLink(Range{
		Anchor: Point{Path: caret.Path, Offset: at - textLen},
		Focus:  Point{Path: caret.Path, Offset: at},
	}, url)
}

// deleteBehind removes the n bytes ending at the given offset of one text
// node; zero-length spans are a no-op rather than a spurious mutation.
func deleteBehind(doc Document, path Path, end, n int) {
	if n == 0 {
		return
	}
	doc.Delete(Range{
		Anchor: Point{Path: path, Offset: end - n},
		Focus:  Point{Path: path, Offset: end},
	})
}
