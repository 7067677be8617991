package literal

import (
	"fmt"
	"log/slog"
)

// QNameResolver maps a prefixed name to an absolute URI using the
// namespaces declared by a query.
type QNameResolver interface {
	ResolveQName(name string) (URI, error)
}

// QNameResolverFunc adapts a function to QNameResolver.
type QNameResolverFunc func(name string) (URI, error)

// ResolveQName calls f(name).
func (f QNameResolverFunc) ResolveQName(name string) (URI, error) { return f(name) }

// HasQName reports whether l still carries an unexpanded prefixed name,
// either as a qname literal or as a pending string datatype.
func HasQName(l *Literal) bool {
	return l.kind == KindQName || (l.kind == KindString && l.flags != "")
}

// ExpandQName resolves any prefixed name inside l in place. A qname literal
// becomes a URI literal. A string with a pending datatype qname gets its
// datatype resolved, loses its language tag and is promoted.
//
// On failure l is left as it was and still belongs to the caller.
func ExpandQName(l *Literal, r QNameResolver) error {
	switch l.kind {
	case KindQName:
		u, err := r.ResolveQName(l.lexical)
		if err != nil {
			return newQNameError(l.lexical, err)
		}
		slog.Debug("expanded qname literal", "qname", l.lexical, "uri", u)
		l.lexical = ""
		l.kind = KindURI
		l.uri = u

	case KindString:
		if l.flags == "" {
			return nil
		}
		u, err := r.ResolveQName(l.flags)
		if err != nil {
			return newQNameError(l.flags, err)
		}

		saved := *l
		l.datatype = u
		l.flags = ""
		l.language = ""
		if err := l.promote(); err != nil {
			*l = saved
			return fmt.Errorf("expand datatype %s: %w", saved.flags, err)
		}
		slog.Debug("expanded string datatype qname", "qname", saved.flags, "datatype", u, "kind", l.kind)
	}
	return nil
}

func newQNameError(name string, cause error) *Error {
	return &Error{
		Code:    ErrCodeQName,
		Message: fmt.Sprintf("cannot resolve qname '%s': %v", name, cause),
		Text:    name,
	}
}

// IsConstant reports whether l is a fixed value rather than a variable
// reference.
func IsConstant(l *Literal) bool {
	switch l.kind {
	case KindURI, KindBlank, KindString, KindPattern, KindQName, KindInteger,
		KindBoolean, KindDouble, KindFloat, KindDecimal, KindDateTime:
		return true
	case KindVariable:
		return false
	default:
		panic(fmt.Sprintf("literal: IsConstant of kind %s", l.kind))
	}
}

// AsNode turns l into an RDF term owned by the caller. URIs, strings and
// blank nodes are shared. Native values are re-expressed as strings typed
// with their datatype. A variable yields its binding, or nil when unbound.
//
// Qnames and patterns have no node form; passing one panics.
func AsNode(l *Literal) *Literal {
	switch l.kind {
	case KindURI, KindString, KindBlank:
		return l.Copy()

	case KindVariable:
		if b := l.variable.binding(); b != nil {
			return b.Copy()
		}
		return nil

	case KindDouble, KindFloat, KindInteger, KindBoolean, KindDecimal, KindDateTime:
		return &Literal{
			kind:     KindString,
			lexical:  l.lexical,
			datatype: l.datatype,
			usage:    1,
		}

	default:
		panic(fmt.Sprintf("literal: cannot turn %s literal into a node", l.kind))
	}
}
