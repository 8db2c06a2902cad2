// Package tokenizer implements a tolerant lexer for a query-DSL string: it
// never fails outright on malformed input (an unterminated quote, a stray
// caret, an unbalanced regex delimiter). Instead it emits the best token
// sequence it can and records a Note for every place it had to guess,
// leaving the decision of whether that's acceptable to the caller.
package tokenizer

// Type classifies a Token's role in the query grammar.
type Type int

const (
	// Term is a bare word or number, the default token kind.
	Term Type = iota
	// Field is an identifier immediately followed by ':'.
	Field
	// Quoted is a phrase delimited by double quotes.
	Quoted
	// Regex is a pattern delimited by forward slashes.
	Regex
	// Modifier is a leading '+' or '-' directly against a term.
	Modifier
	// Boost is a '^' followed by a numeric weight.
	Boost
	// Fuzzy is a '~' followed by an optional numeric edit distance.
	Fuzzy
	// RangeOpen is '[' or '{' opening a range query.
	RangeOpen
	// RangeClose is ']' or '}' closing a range query.
	RangeClose
	// Operator is one of AND/OR/NOT/TO.
	Operator
	// OpenGroup is '('.
	OpenGroup
	// CloseGroup is ')'.
	CloseGroup
	// CJK is a single CJK ideograph/kana/hangul character, tokenized on
	// its own rather than merged into a run the way Latin script is.
	CJK
)

// Token is one lexical unit, linked to its neighbors so a caller can
// splice, replace, or insert tokens without re-running the lexer over the
// whole input — the doubly linked sequence a query-DSL parser walks while
// it builds the query tree.
type Token struct {
	Type  Type
	Text  string
	Start int // rune offset into the original input, inclusive
	End   int // rune offset into the original input, exclusive

	Prev *Token
	Next *Token
}

// InsertAfter splices n into the list immediately after t.
func (t *Token) InsertAfter(n *Token) {
	n.Prev = t
	n.Next = t.Next
	if t.Next != nil {
		t.Next.Prev = n
	}
	t.Next = n
}

// InsertBefore splices n into the list immediately before t.
func (t *Token) InsertBefore(n *Token) {
	n.Next = t
	n.Prev = t.Prev
	if t.Prev != nil {
		t.Prev.Next = n
	}
	t.Prev = n
}

// Remove unlinks t from its neighbors, stitching Prev directly to Next.
func (t *Token) Remove() {
	if t.Prev != nil {
		t.Prev.Next = t.Next
	}
	if t.Next != nil {
		t.Next.Prev = t.Prev
	}
	t.Prev = nil
	t.Next = nil
}

// getEditedToken returns a copy of original with its text replaced by
// newText, preserving Type, Start, and End but leaving the copy unlinked —
// callers splice it in with InsertAfter/InsertBefore in place of the
// token it replaces. Used after an escaping pass rewrites a token's
// literal text (e.g. collapsing `\"` to `"`) without disturbing its
// reported source span.
func getEditedToken(original *Token, newText string) *Token {
	return &Token{Type: original.Type, Text: newText, Start: original.Start, End: original.End}
}

// getTokenForArbitraryInsertion returns a brand-new, unlinked token of the
// given type and text with a zero-width position, for synthetic tokens a
// parser needs to insert that don't correspond to any span of the
// original input (e.g. an implicit AND between two adjacent terms).
func getTokenForArbitraryInsertion(typ Type, text string) *Token {
	return &Token{Type: typ, Text: text}
}

// getTokenForTermInsertion is getTokenForArbitraryInsertion specialized to
// the common case of inserting a synthetic Term token.
func getTokenForTermInsertion(text string) *Token {
	return getTokenForArbitraryInsertion(Term, text)
}
