// Package syntax implements the struct-of-arrays AST: a dense Header array
// addressed by NodeID, plus per-kind typed side pools. Node 0 is reserved as
// the "no node" sentinel so zero-valued NodeID fields in side pools mean
// "absent" without an extra boolean.
package syntax

// Kind discriminates syntactic categories. A closed enumeration, the way
// spec.md describes it; this is a representative subset (not the full ~170)
// sufficient to drive the binder/solver/checker semantics the spec actually
// tests.
type Kind uint16

const (
	KindInvalid Kind = iota
	KindSourceFile

	// Expressions
	KindIdentifier
	KindPrivateIdentifier
	KindNumericLiteral
	KindBigIntLiteral
	KindStringLiteral
	KindNoSubstitutionTemplateLiteral
	KindTemplateExpression
	KindRegexLiteral
	KindTrueLiteral
	KindFalseLiteral
	KindNullLiteral
	KindThisExpression
	KindSuperExpression
	KindArrayLiteral
	KindObjectLiteral
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindSpreadAssignment
	KindParenthesizedExpression
	KindFunctionExpression
	KindArrowFunction
	KindClassExpression
	KindCallExpression
	KindNewExpression
	KindTaggedTemplateExpression
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindBinaryExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindConditionalExpression // a ? b : c
	KindAsExpression
	KindSatisfiesExpression
	KindTypeAssertionExpression // <T>x
	KindNonNullExpression       // x!
	KindSpreadElement
	KindAwaitExpression
	KindYieldExpression
	KindDeleteExpression
	KindVoidExpression
	KindTypeofExpression
	KindOmittedExpression // elided array element

	// Declarations / bindings
	KindIdentifierBinding
	KindObjectBindingPattern
	KindArrayBindingPattern
	KindBindingElement
	KindVariableDeclaration
	KindVariableDeclarationList
	KindVariableStatement
	KindFunctionDeclaration
	KindClassDeclaration
	KindParameter
	KindTypeParameter
	KindHeritageClause
	KindPropertyDeclaration
	KindMethodDeclaration
	KindGetAccessor
	KindSetAccessor
	KindConstructor
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindEnumDeclaration
	KindEnumMember
	KindModuleDeclaration

	// Statements
	KindBlock
	KindEmptyStatement
	KindExpressionStatement
	KindIfStatement
	KindDoStatement
	KindWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindContinueStatement
	KindBreakStatement
	KindReturnStatement
	KindWithStatement
	KindSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindLabeledStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindDebuggerStatement

	// Imports/exports
	KindImportDeclaration
	KindImportClause
	KindNamedImports
	KindImportSpecifier
	KindNamespaceImport
	KindExportDeclaration
	KindExportAssignment // export default E / export = E
	KindNamedExports
	KindExportSpecifier
	KindModuleBlock

	// Type nodes
	KindKeywordTypeAny
	KindKeywordTypeUnknown
	KindKeywordTypeNever
	KindKeywordTypeVoid
	KindKeywordTypeUndefined
	KindKeywordTypeNull
	KindKeywordTypeString
	KindKeywordTypeNumber
	KindKeywordTypeBoolean
	KindKeywordTypeBigint
	KindKeywordTypeSymbol
	KindKeywordTypeObject
	KindLiteralType
	KindTypeReference
	KindArrayType
	KindTupleType
	KindNamedTupleMember
	KindObjectType // type literal { ... }
	KindPropertySignature
	KindMethodSignature
	KindCallSignature
	KindConstructSignature
	KindIndexSignature
	KindUnionType
	KindIntersectionType
	KindFunctionType
	KindConstructorType
	KindConditionalType
	KindInferType
	KindMappedType
	KindIndexedAccessType
	KindTypeOperatorKeyof
	KindTypeOperatorReadonly
	KindTypeOperatorUnique
	KindTypeQuery // typeof x
	KindTemplateLiteralType
	KindTemplateLiteralTypeSpan
	KindThisType
	KindParenthesizedType
	KindRestType
	KindOptionalType

	// Error recovery
	KindMissing
	KindUnknownNode
)

// Flags is a 16-bit per-node context bit set.
type Flags uint16

const (
	FlagNone Flags = 0
	FlagContainsEscape Flags = 1 << iota
	FlagAmbientContext
	FlagHasLeadingComment
	FlagSynthesized
	FlagHasError
	FlagAsync
	FlagGenerator
	FlagStatic
	FlagReadonly
	FlagOptional
	FlagAbstract
	FlagExported
	FlagDefaultExport
	FlagAmbient
	FlagConst // for `const` enum / `const` variable-decl-list
)
