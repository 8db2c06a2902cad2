package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenTexts(head *Token) []string {
	var out []string
	for t := head; t != nil; t = t.Next {
		out = append(out, t.Text)
	}

	return out
}

func tokenTypes(head *Token) []Type {
	var out []Type
	for t := head; t != nil; t = t.Next {
		out = append(out, t.Type)
	}

	return out
}

func TestTokenize_SimpleTerms(t *testing.T) {
	head, notes := Tokenize("hello world")
	require.Empty(t, notes)
	require.Equal(t, []string{"hello", "world"}, tokenTexts(head))
	require.Equal(t, []Type{Term, Term}, tokenTypes(head))
}

func TestTokenize_Field(t *testing.T) {
	head, notes := Tokenize("title:golang")
	require.Empty(t, notes)
	require.Equal(t, []Type{Field, Term}, tokenTypes(head))
	require.Equal(t, "title", head.Text)
	require.Equal(t, "golang", head.Next.Text)
}

func TestTokenize_QuotedPhrase(t *testing.T) {
	head, notes := Tokenize(`"hello world"`)
	require.Empty(t, notes)
	require.Len(t, tokenTexts(head), 1)
	require.Equal(t, Quoted, head.Type)
	require.Equal(t, "hello world", head.Text)
}

func TestTokenize_UnterminatedQuoteIsTolerated(t *testing.T) {
	head, notes := Tokenize(`"hello`)
	require.Len(t, notes, 1)
	require.Equal(t, UnterminatedQuote, notes[0].Kind)
	require.Equal(t, "hello", head.Text)
}

func TestTokenize_Regex(t *testing.T) {
	head, notes := Tokenize("/fo+bar/")
	require.Empty(t, notes)
	require.Equal(t, Regex, head.Type)
	require.Equal(t, "fo+bar", head.Text)
}

func TestTokenize_UnterminatedRegexIsTolerated(t *testing.T) {
	_, notes := Tokenize("/fo+bar")
	require.Len(t, notes, 1)
	require.Equal(t, UnterminatedRegex, notes[0].Kind)
}

func TestTokenize_Boost(t *testing.T) {
	head, _ := Tokenize("quick^2.5")
	types := tokenTypes(head)
	require.Equal(t, []Type{Term, Boost}, types)
	require.Equal(t, "2.5", head.Next.Text)
}

func TestTokenize_StrayCaretIsTolerated(t *testing.T) {
	head, notes := Tokenize("quick^ slow")
	require.Len(t, notes, 1)
	require.Equal(t, StrayCaret, notes[0].Kind)
	require.Equal(t, []string{"quick", "^", "slow"}, tokenTexts(head))
}

func TestTokenize_Fuzzy(t *testing.T) {
	head, notes := Tokenize("roam~2")
	require.Empty(t, notes)
	require.Equal(t, []Type{Term, Fuzzy}, tokenTypes(head))
	require.Equal(t, "2", head.Next.Text)
}

func TestTokenize_Modifiers(t *testing.T) {
	head, _ := Tokenize("+required -excluded")
	require.Equal(t, []Type{Modifier, Term, Modifier, Term}, tokenTypes(head))
}

func TestTokenize_BooleanOperators(t *testing.T) {
	head, _ := Tokenize("cat AND dog NOT fish")
	require.Equal(t, []Type{Term, Operator, Term, Operator, Term}, tokenTypes(head))
}

func TestTokenize_Groups(t *testing.T) {
	head, notes := Tokenize("(a OR b)")
	require.Empty(t, notes)
	require.Equal(t, []Type{OpenGroup, Term, Operator, Term, CloseGroup}, tokenTypes(head))
}

func TestTokenize_UnbalancedGroupIsTolerated(t *testing.T) {
	_, notes := Tokenize("(a OR b")
	require.Len(t, notes, 1)
	require.Equal(t, UnbalancedGroup, notes[0].Kind)
}

func TestTokenize_Range(t *testing.T) {
	head, notes := Tokenize("[1 TO 10]")
	require.Empty(t, notes)
	require.Equal(t, []Type{RangeOpen, Term, Operator, Term, RangeClose}, tokenTypes(head))
}

func TestTokenize_CJKSplitsPerCharacter(t *testing.T) {
	head, notes := Tokenize("东京都")
	require.Empty(t, notes)
	require.Equal(t, []string{"东", "京", "都"}, tokenTexts(head))
	require.Equal(t, []Type{CJK, CJK, CJK}, tokenTypes(head))
}

func TestTokenize_MixedCJKAndLatin(t *testing.T) {
	head, _ := Tokenize("東京 tokyo")
	require.Equal(t, []string{"東", "京", "tokyo"}, tokenTexts(head))
}

func TestTokenize_EscapedQuoteInsidePhrase(t *testing.T) {
	head, notes := Tokenize(`"say \"hi\""`)
	require.Empty(t, notes)
	require.Equal(t, `say "hi"`, head.Text)
}

func TestGetEditedToken_PreservesSpanReplacesText(t *testing.T) {
	original := &Token{Type: Term, Text: "raw", Start: 3, End: 6}
	edited := getEditedToken(original, "clean")

	require.Equal(t, Term, edited.Type)
	require.Equal(t, "clean", edited.Text)
	require.Equal(t, 3, edited.Start)
	require.Equal(t, 6, edited.End)
	require.Nil(t, edited.Prev)
	require.Nil(t, edited.Next)
}

func TestGetTokenForTermInsertion_IsUnlinkedZeroWidth(t *testing.T) {
	tok := getTokenForTermInsertion("and")
	require.Equal(t, Term, tok.Type)
	require.Equal(t, "and", tok.Text)
	require.Equal(t, 0, tok.Start)
	require.Equal(t, 0, tok.End)
	require.Nil(t, tok.Prev)
	require.Nil(t, tok.Next)
}

func TestToken_InsertAfterAndRemove(t *testing.T) {
	a := &Token{Type: Term, Text: "a"}
	b := &Token{Type: Term, Text: "b"}
	c := &Token{Type: Term, Text: "c"}

	a.InsertAfter(c)
	a.InsertAfter(b)

	require.Equal(t, []string{"a", "b", "c"}, tokenTexts(a))

	b.Remove()
	require.Equal(t, []string{"a", "c"}, tokenTexts(a))
}
