package shortcut

import "regexp"

// Block type names produced by the default block table. Hosts may define
// further types; the engine compares only against DefaultType and ListItem.
const (
	Paragraph    = "paragraph"
	HeadingOne   = "heading-one"
	HeadingTwo   = "heading-two"
	HeadingThree = "heading-three"
	BlockQuote   = "block-quote"
	ListItem     = "list-item"
	BulletedList = "bulleted-list"
	NumberedList = "numbered-list"
)

// Inline shortcut kinds. For emphasis and code the kind doubles as the mark
// name passed to Document.AddMark.
const (
	Bold   = "bold"
	Italic = "italic"
	Code   = "code"
	Link   = "link"
)

// BlockRule maps an exact line-prefix pattern to a produced block type.
// Container is non-empty only for list rules, naming the list container type
// that the retyped block gets wrapped in.
type BlockRule struct {
	Pattern   *regexp.Regexp
	Type      string
	Container string
}

// InlineRule maps a delimiter pattern to an inline result kind. Emphasis and
// code patterns capture (open, inner, close); link patterns capture (open
// bracket, text, middle marker, url, close paren). Patterns must match
// through the end of the resolver input, whose final character is the
// in-flight keystroke.
type InlineRule struct {
	Pattern *regexp.Regexp
	Kind    string
}

// DefaultBlockRules is the standard block shortcut table, tried in order
// with the first match winning.
var DefaultBlockRules = []BlockRule{
	{Pattern: regexp.MustCompile(`^[*+-]$`), Type: ListItem, Container: BulletedList},
	{Pattern: regexp.MustCompile(`^\d+\.$`), Type: ListItem, Container: NumberedList},
	{Pattern: regexp.MustCompile(`^>$`), Type: BlockQuote},
	{Pattern: regexp.MustCompile(`^#$`), Type: HeadingOne},
	{Pattern: regexp.MustCompile(`^##$`), Type: HeadingTwo},
	{Pattern: regexp.MustCompile(`^###$`), Type: HeadingThree},
}

// DefaultInlineRules is the standard inline shortcut table, tried in order
// with the first match winning. The two-character bold delimiters come
// before their one-character italic counterparts so `**x**` never reads as
// italic. Delimiters only open at start of run or after whitespace, to avoid
// matching inside words.
var DefaultInlineRules = []InlineRule{
	{Pattern: regexp.MustCompile(`(?:^|\s)(\*\*)([^*]+)(\*\*)$`), Kind: Bold},
	{Pattern: regexp.MustCompile(`(?:^|\s)(__)([^_]+)(__)$`), Kind: Bold},
	{Pattern: regexp.MustCompile(`(?:^|\s)(\*)([^*]+)(\*)$`), Kind: Italic},
	{Pattern: regexp.MustCompile(`(?:^|\s)(_)([^_]+)(_)$`), Kind: Italic},
	{Pattern: regexp.MustCompile("(?:^|\\s)(`)([^`]+)(`)$"), Kind: Code},
	{Pattern: regexp.MustCompile(`(?:^|\s)(\[)([^\[\]]+)(\]\()([^()]+)(\))$`), Kind: Link},
}

// matchBlock returns the first rule whose pattern matches the entire line
// prefix. Leading or trailing unmatched characters disqualify.
func matchBlock(rules []BlockRule, prefix string) (BlockRule, bool) {
	for _, rule := range rules {
		if loc := rule.Pattern.FindStringIndex(prefix); loc != nil && loc[0] == 0 && loc[1] == len(prefix) {
			return rule, true
		}
	}
	return BlockRule{}, false
}

// matchInline returns the first rule whose pattern matches text ending at
// its final byte, along with the submatch index pairs for group length
// arithmetic.
func matchInline(rules []InlineRule, text string) (InlineRule, []int, bool) {
	for _, rule := range rules {
		if m := rule.Pattern.FindStringSubmatchIndex(text); m != nil && m[1] == len(text) {
			return rule, m, true
		}
	}
	return InlineRule{}, nil, false
}
