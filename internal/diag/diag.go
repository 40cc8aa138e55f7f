// Package diag implements diagnostics as first-class data. Parser, binder,
// and checker failures are never reported through Go's error/panic control
// flow -- they are Diagnostic values appended to a Bag, exactly as ordinary
// tooling errors (missing files, I/O failures) are instead wrapped with
// github.com/pkg/errors and returned up the call stack. The two channels
// are never conflated: a malformed TypeScript program is not a Go error.
package diag

import "sort"

// Severity classifies a Diagnostic for display and for whether it poisons
// downstream type results.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeveritySuggestion
	SeverityMessage
)

// Code is a stable TSxxxx-style diagnostic code. Stability matters: editor
// integrations key suppression comments and quick-fixes off the numeric
// code, not the message text.
type Code uint32

const (
	_ Code = iota

	// Scanner-derived (1000s)
	CodeUnterminatedStringLiteral Code = 1000 + iota
	CodeUnterminatedComment
	CodeUnterminatedTemplateLiteral
	CodeUnterminatedRegularExpression
	CodeInvalidEscapeSequence
	CodeNumericSeparatorInvalidPosition
	CodeDuplicateRegularExpressionFlag
	CodeUnknownRegularExpressionFlag
	CodeRegularExpressionUVFlagExclusivity

	// Parser-derived (1100s)
	CodeUnexpectedToken Code = 1100 + iota
	CodeExpectedToken
	CodeTrailingCommaNotAllowed
	CodeDeclarationOrStatementExpected
	CodeExpressionExpected
	CodeIdentifierExpected
	CodeTypeExpected

	// Binder-derived (2000s)
	CodeCannotRedeclareBlockScopedVariable Code = 2000 + iota
	CodeDuplicateIdentifier
	CodeModuleHasNoExportedMember
	CodeCircularModuleDependency
	CodeCannotFindModule
	CodeUsedBeforeItsDeclaration

	// Type-checker-derived (2300s, matching the tsc range this spec mirrors)
	CodeTypeIsNotAssignableToType Code = 2322
	CodePropertyDoesNotExistOnType Code = 2339
	CodeObjectIsPossiblyUndefined Code = 2532
	CodeObjectIsPossiblyNull       Code = 2531
	CodeExcessPropertyError        Code = 2353
	CodeArgumentNotAssignableToParameter Code = 2345
	CodeTypeHasNoCallSignatures    Code = 2349
	CodeCannotInferTypeArguments   Code = 2742
	CodeGenericTypeRequiresArgs    Code = 2314
	CodePropertyNotDefinitelyAssigned Code = 2564
	CodeImplicitAny                Code = 7006
	CodeCannotFindName              Code = 2304
)

// RelatedInformation attaches a secondary span/message to a Diagnostic, for
// "see also" notes like "property was declared here".
type RelatedInformation struct {
	File    string
	Start   int
	Length  int
	Message string
}

// Diagnostic is one reportable condition, positioned by byte offsets into a
// single file's source text.
type Diagnostic struct {
	Code     Code
	Severity Severity
	File     string
	Start    int
	Length   int
	Message  string
	Related  []RelatedInformation
}

// Reporter is the streaming sink a component reports diagnostics through
// without owning storage -- e.g. a checker pass that runs inside a larger
// pipeline and wants its output merged with other passes' without importing
// Bag's sort/dedup behavior.
type Reporter interface {
	Report(d Diagnostic)
}

// Bag collects diagnostics for one compilation and normalizes them on
// read: stable-sorted by (File, Start), then deduplicated by identical
// (File, Start, Length, Code) so cascading errors from the same root cause
// don't show up twice.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Report implements Reporter.
func (b *Bag) Report(d Diagnostic) { b.items = append(b.items, d) }

// Len returns the number of diagnostics appended so far (pre-dedup).
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any appended diagnostic is SeverityError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns a stable-sorted, deduplicated snapshot of the bag's contents.
// The Bag itself is left unmodified; callers that want the normalized view
// cached should call this once and hold onto the result.
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Start < out[j].Start
	})

	type key struct {
		file         string
		start, length int
		code         Code
	}
	seen := make(map[key]bool, len(out))
	deduped := out[:0]
	for _, d := range out {
		k := key{d.File, d.Start, d.Length, d.Code}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, d)
	}
	return deduped
}
