package literal

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the debug form of l to w. The format is for inspection
// only and may change.
func (l *Literal) Print(w io.Writer) error {
	_, err := io.WriteString(w, l.String())
	return err
}

// String returns the debug form of l, for example
//
//	uri<http://example.org/>
//	string("chat"@fr)
//	integer 42
//	variable(x=boolean(true))
func (l *Literal) String() string {
	if l == nil {
		return "null"
	}

	var b strings.Builder
	if l.kind != KindVariable {
		b.WriteString(l.kind.String())
	}

	switch l.kind {
	case KindURI:
		fmt.Fprintf(&b, "<%s>", l.uri)
	case KindBlank:
		fmt.Fprintf(&b, " %s", l.lexical)
	case KindPattern:
		fmt.Fprintf(&b, "/%s/%s", l.lexical, l.flags)
	case KindString:
		b.WriteString(`("`)
		writeEscaped(&b, l.lexical)
		b.WriteByte('"')
		if l.language != "" {
			fmt.Fprintf(&b, "@%s", l.language)
		}
		if l.datatype != "" {
			fmt.Fprintf(&b, "^^<%s>", l.datatype)
		}
		b.WriteByte(')')
	case KindQName:
		fmt.Fprintf(&b, "(%s)", l.lexical)
	case KindInteger:
		fmt.Fprintf(&b, " %d", l.integer)
	case KindBoolean:
		fmt.Fprintf(&b, "(%s)", l.lexical)
	case KindDouble:
		fmt.Fprintf(&b, " %.6g", l.floating)
	case KindFloat:
		fmt.Fprintf(&b, " float(%.6g)", l.floating)
	case KindDecimal:
		fmt.Fprintf(&b, " decimal(%s)", l.lexical)
	case KindDateTime:
		fmt.Fprintf(&b, " datetime(%s)", l.lexical)
	case KindVariable:
		b.WriteString(l.variable.String())
	default:
		panic(fmt.Sprintf("literal: String of kind %d", int(l.kind)))
	}
	return b.String()
}

// String returns the debug form of v with its binding, if any.
func (v *Variable) String() string {
	if v == nil {
		return "variable()"
	}
	if v.Value == nil {
		return fmt.Sprintf("variable(%s)", v.Name)
	}
	return fmt.Sprintf("variable(%s=%s)", v.Name, v.Value.String())
}

// writeEscaped writes s with N-Triples string escapes.
func writeEscaped(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(b, `\u%04X`, r)
			case r > 0xffff:
				fmt.Fprintf(b, `\U%08X`, r)
			case r > 0x7f:
				fmt.Fprintf(b, `\u%04X`, r)
			default:
				b.WriteRune(r)
			}
		}
	}
}
