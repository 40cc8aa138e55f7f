package compiler

import (
	"strconv"
	"strings"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// formatType renders t as the short-form type string an LSP hover shows
// (the same register tsc's quickinfo uses: `string | number`, `{ x: number
// }`, `(a: string) => void`), recursing through the interner rather than
// walking any source syntax -- TypeAt hands back the checked type, which
// may have no single declaration node at all (an inferred union member,
// a solved generic instantiation).
type symbolNamer func(ref types.SymbolRef) (string, bool)

func formatType(in *types.Interner, names *atom.Interner, t types.TypeID, sym symbolNamer) string {
	var b strings.Builder
	writeType(&b, in, names, sym, t, 0)
	return b.String()
}

func writeType(b *strings.Builder, in *types.Interner, names *atom.Interner, sym symbolNamer, t types.TypeID, depth int) {
	if depth > 8 {
		b.WriteString("...")
		return
	}
	k := in.Get(t)
	switch k.Kind {
	case types.KindAny:
		b.WriteString("any")
	case types.KindNever:
		b.WriteString("never")
	case types.KindUnknown:
		b.WriteString("unknown")
	case types.KindError:
		b.WriteString("error")
	case types.KindString:
		b.WriteString("string")
	case types.KindNumber:
		b.WriteString("number")
	case types.KindBoolean:
		b.WriteString("boolean")
	case types.KindBigint:
		b.WriteString("bigint")
	case types.KindSymbol:
		b.WriteString("symbol")
	case types.KindVoid:
		b.WriteString("void")
	case types.KindNull:
		b.WriteString("null")
	case types.KindUndefined:
		b.WriteString("undefined")
	case types.KindObjectKeyword:
		b.WriteString("object")
	case types.KindFunctionKeyword:
		b.WriteString("Function")
	case types.KindStringLiteral:
		b.WriteByte('"')
		b.WriteString(names.Text(k.StringLit))
		b.WriteByte('"')
	case types.KindNumberLiteral:
		b.WriteString(strconv.FormatFloat(k.NumberLit, 'g', -1, 64))
	case types.KindBooleanLiteral:
		b.WriteString(strconv.FormatBool(k.BooleanLit))
	case types.KindBigintLiteral:
		b.WriteString(names.Text(k.BigintLit))
		b.WriteByte('n')
	case types.KindUnion:
		for i, m := range k.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			writeType(b, in, names, sym, m, depth+1)
		}
	case types.KindIntersection:
		for i, m := range k.Members {
			if i > 0 {
				b.WriteString(" & ")
			}
			writeType(b, in, names, sym, m, depth+1)
		}
	case types.KindArray:
		writeType(b, in, names, sym, k.Element, depth+1)
		b.WriteString("[]")
	case types.KindTuple:
		b.WriteByte('[')
		for i, e := range k.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, in, names, sym, e.Type, depth+1)
			if e.Optional {
				b.WriteByte('?')
			}
			if e.Rest {
				b.WriteString("...")
			}
		}
		b.WriteByte(']')
	case types.KindObject:
		b.WriteString("{ ")
		for i, p := range k.Properties {
			if i > 0 {
				b.WriteString("; ")
			}
			if p.Readonly {
				b.WriteString("readonly ")
			}
			b.WriteString(names.Text(p.Name))
			if p.Optional {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			writeType(b, in, names, sym, p.Type, depth+1)
		}
		for _, idx := range k.Indexes {
			if len(k.Properties) > 0 {
				b.WriteString("; ")
			}
			b.WriteString("[key: ")
			if idx.KeyKind == types.KindNumber {
				b.WriteString("number")
			} else {
				b.WriteString("string")
			}
			b.WriteString("]: ")
			writeType(b, in, names, sym, idx.Value, depth+1)
		}
		b.WriteString(" }")
	case types.KindFunction:
		if len(k.TypeParams) > 0 {
			b.WriteByte('<')
			for i, tp := range k.TypeParams {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(names.Text(tp))
			}
			b.WriteByte('>')
		}
		b.WriteByte('(')
		for i, p := range k.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if p.Rest {
				b.WriteString("...")
			}
			b.WriteString(names.Text(p.Name))
			if p.Optional {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			writeType(b, in, names, sym, p.Type, depth+1)
		}
		b.WriteString(") => ")
		writeType(b, in, names, sym, k.Return, depth+1)
	case types.KindTypeParameter, types.KindTypeReference:
		b.WriteString(symbolLabel(sym, k.Symbol))
		if len(k.TypeArgs) > 0 {
			b.WriteByte('<')
			for i, a := range k.TypeArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				writeType(b, in, names, sym, a, depth+1)
			}
			b.WriteByte('>')
		}
	case types.KindConditional:
		writeType(b, in, names, sym, k.Check, depth+1)
		b.WriteString(" extends ")
		writeType(b, in, names, sym, k.Extends, depth+1)
		b.WriteString(" ? ")
		writeType(b, in, names, sym, k.True, depth+1)
		b.WriteString(" : ")
		writeType(b, in, names, sym, k.False, depth+1)
	case types.KindMapped:
		b.WriteString("{ [K in ")
		writeType(b, in, names, sym, k.KeySource, depth+1)
		b.WriteString("]: ")
		writeType(b, in, names, sym, k.Element, depth+1)
		b.WriteString(" }")
	case types.KindKeyof:
		b.WriteString("keyof ")
		writeType(b, in, names, sym, k.Element, depth+1)
	case types.KindIndexedAccess:
		writeType(b, in, names, sym, k.Element, depth+1)
		b.WriteByte('[')
		writeType(b, in, names, sym, k.Index, depth+1)
		b.WriteByte(']')
	case types.KindTemplateLiteral:
		b.WriteByte('`')
		for i, lit := range k.Template.Literals {
			b.WriteString(names.Text(lit))
			if i < len(k.Template.Types) {
				b.WriteString("${")
				writeType(b, in, names, sym, k.Template.Types[i], depth+1)
				b.WriteByte('}')
			}
		}
		b.WriteByte('`')
	case types.KindInferVar:
		b.WriteString("infer ")
		b.WriteString(symbolLabel(sym, k.Symbol))
	default:
		b.WriteString("unknown")
	}
}

// symbolLabel resolves ref to its declared name via sym, falling back to a
// numeric placeholder (T0, T1, ...) when sym is nil or the symbol can't be
// found -- formatType is sometimes called without a compilation in scope
// (tests exercising it directly against a bare Interner).
func symbolLabel(sym symbolNamer, ref types.SymbolRef) string {
	if sym != nil {
		if name, ok := sym(ref); ok {
			return name
		}
	}
	return "T" + strconv.Itoa(int(ref.ID))
}
