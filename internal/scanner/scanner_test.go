package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/scanner"
)

func scanAll(t *testing.T, src string) []scanner.Token {
	t.Helper()
	in := atom.New()
	sc := scanner.New([]byte(src), in, false)
	var toks []scanner.Token
	for {
		k := sc.Scan()
		toks = append(toks, sc.Token())
		if k == scanner.EOF {
			break
		}
	}
	return toks
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "let x = function")
	require.Len(t, toks, 5)
	// "let" is contextual, not a reserved word, so it scans as a plain Ident;
	// the parser consults scanner.ContextualKind to recognize it.
	assert.Equal(t, scanner.Ident, toks[0].Kind)
	assert.Equal(t, scanner.LetKeyword, scanner.ContextualKind("let"))
	assert.Equal(t, scanner.Ident, toks[1].Kind)
	assert.Equal(t, scanner.Equals, toks[2].Kind)
	assert.Equal(t, scanner.FunctionKeyword, toks[3].Kind)
}

func TestNumericSeparatorsAndBigInt(t *testing.T) {
	toks := scanAll(t, "1_000_000 0x1_F 10n")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, scanner.NumericLiteral, toks[0].Kind)
	assert.Zero(t, toks[0].Flags&scanner.FlagContainsInvalidSeparatorPosition)
	assert.NotZero(t, toks[0].Flags&scanner.FlagContainsNumericSeparator)
	assert.Equal(t, scanner.NumericLiteral, toks[1].Kind)
	assert.NotZero(t, toks[1].Flags&scanner.FlagHexPrefix)
	assert.Equal(t, scanner.BigIntLiteral, toks[2].Kind)
}

func TestLeadingTrailingSeparatorFlagged(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte("1_"), in, false)
	sc.Scan()
	assert.NotEmpty(t, sc.Errors())
}

func TestUnterminatedString(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte(`"abc`), in, false)
	k := sc.Scan()
	assert.Equal(t, scanner.StringLiteral, k)
	assert.NotZero(t, sc.Token().Flags&scanner.FlagUnterminated)
	require.Len(t, sc.Errors(), 1)
	assert.Equal(t, scanner.ErrUnterminatedString, sc.Errors()[0].Code)
}

func TestTemplateHeadMiddleTail(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte("`a${x}b${y}c`"), in, false)
	k := sc.Scan()
	assert.Equal(t, scanner.TemplateHead, k)
	sc.Scan() // x
	require.Equal(t, scanner.CloseBrace, sc.Scan())
	assert.Equal(t, scanner.TemplateMiddle, sc.RescanTemplateContinuation())
	sc.Scan() // y
	require.Equal(t, scanner.CloseBrace, sc.Scan())
	assert.Equal(t, scanner.TemplateTail, sc.RescanTemplateContinuation())
}

func TestRescanGreaterThanSplitsShiftOperator(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte("a>>b"), in, false)
	sc.Scan() // a
	k := sc.Scan()
	require.Equal(t, scanner.GreaterThanGreaterThan, k)
	k = sc.RescanGreaterThan()
	assert.Equal(t, scanner.GreaterThan, k)
	assert.Equal(t, sc.Token().End, sc.Token().Start+1)
}

func TestRescanSlashAsRegex(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte("/ab+c/gi"), in, false)
	k := sc.Scan()
	require.Equal(t, scanner.Slash, k)
	k = sc.RescanSlashAsRegex()
	assert.Equal(t, scanner.RegexLiteral, k)
	assert.Empty(t, sc.Errors())
}

func TestRegexDuplicateFlagError(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte("/x/gg"), in, false)
	sc.Scan()
	sc.RescanSlashAsRegex()
	require.Len(t, sc.Errors(), 1)
	assert.Equal(t, scanner.ErrDuplicateRegexFlag, sc.Errors()[0].Code)
}

func TestSnapshotRestore(t *testing.T) {
	in := atom.New()
	sc := scanner.New([]byte("foo bar baz"), in, false)
	sc.Scan() // foo
	snap := sc.Save()
	sc.Scan() // bar
	sc.Scan() // baz
	sc.Restore(snap)
	k := sc.Scan()
	assert.Equal(t, scanner.Ident, k)
	assert.Equal(t, "bar", in.Text(sc.Token().Atom))
}

func TestOptionalChainVsTernaryWithDecimal(t *testing.T) {
	toks := scanAll(t, "a?.5:6")
	// '?' followed by '.' followed by a digit must NOT be QuestionDot.
	assert.Equal(t, scanner.Question, toks[1].Kind)
}

func TestPrecedingLineBreakFlag(t *testing.T) {
	toks := scanAll(t, "a\nb")
	require.Len(t, toks, 3)
	assert.NotZero(t, toks[1].Flags&scanner.FlagPrecedingLineBreak)
}
