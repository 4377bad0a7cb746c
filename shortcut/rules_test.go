package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchBlockIsExact(t *testing.T) {
	for _, tc := range []struct {
		prefix string
		typ    string
	}{
		{"#", HeadingOne},
		{"##", HeadingTwo},
		{"###", HeadingThree},
		{">", BlockQuote},
		{"-", ListItem},
		{"7.", ListItem},
		{"", ""},
		{"# ", ""},  // trailing extra character
		{"x#", ""},  // leading extra character
		{"1:", ""},  // wrong delimiter
		{"##x", ""}, // no partial heading match
	} {
		rule, ok := matchBlock(DefaultBlockRules, tc.prefix)
		if tc.typ == "" {
			assert.False(t, ok, "prefix %q must not match", tc.prefix)
		} else if assert.True(t, ok, "prefix %q must match", tc.prefix) {
			assert.Equal(t, tc.typ, rule.Type, "prefix %q", tc.prefix)
		}
	}
}

func TestMatchInlineTableOrder(t *testing.T) {
	rule, _, ok := matchInline(DefaultInlineRules, "**word**")
	require.True(t, ok)
	assert.Equal(t, Bold, rule.Kind, "two-character delimiters must win over one")

	rule, _, ok = matchInline(DefaultInlineRules, "__word__")
	require.True(t, ok)
	assert.Equal(t, Bold, rule.Kind)
}

func TestMatchInlineGroups(t *testing.T) {
	text := "see *it*"
	rule, m, ok := matchInline(DefaultInlineRules, text)
	require.True(t, ok)
	assert.Equal(t, Italic, rule.Kind)
	assert.Equal(t, "*", text[m[2]:m[3]])
	assert.Equal(t, "it", text[m[4]:m[5]])
	assert.Equal(t, "*", text[m[6]:m[7]])

	text = "[docs](https://example.com)"
	rule, m, ok = matchInline(DefaultInlineRules, text)
	require.True(t, ok)
	assert.Equal(t, Link, rule.Kind)
	assert.Equal(t, "[", text[m[2]:m[3]])
	assert.Equal(t, "docs", text[m[4]:m[5]])
	assert.Equal(t, "](", text[m[6]:m[7]])
	assert.Equal(t, "https://example.com", text[m[8]:m[9]])
	assert.Equal(t, ")", text[m[10]:m[11]])
}

func TestMatchInlineBoundaries(t *testing.T) {
	for _, text := range []string{
		"snake_case_", // delimiter inside a word must not open
		"2*3*",        // same for star math
		"*it* later",  // match must end at the caret
		"**",          // no inner text
		"*it",         // unclosed
	} {
		_, _, ok := matchInline(DefaultInlineRules, text)
		assert.False(t, ok, "%q must not match", text)
	}

	for _, text := range []string{
		"*it*",
		"x *it*",
		"`code`",
	} {
		_, _, ok := matchInline(DefaultInlineRules, text)
		assert.True(t, ok, "%q must match", text)
	}
}
