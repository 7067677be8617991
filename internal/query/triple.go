package query

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/sparqlcore/internal/literal"
)

// Triple is one triple pattern. Each position owns one share of its
// literal.
type Triple struct {
	Subject   *literal.Literal
	Predicate *literal.Literal
	Object    *literal.Literal
}

// NewTriple takes ownership of the three literals.
func NewTriple(s, p, o *literal.Literal) *Triple {
	return &Triple{Subject: s, Predicate: p, Object: o}
}

// Free releases the triple's literals.
func (t *Triple) Free() {
	if t == nil {
		return
	}
	t.Subject.Free()
	t.Predicate.Free()
	t.Object.Free()
	t.Subject, t.Predicate, t.Object = nil, nil, nil
}

// Write renders the triple as triple(S, P, O).
func (t *Triple) Write(w io.Writer) error {
	_, err := io.WriteString(w, t.String())
	return err
}

// String returns the debug form of the triple.
func (t *Triple) String() string {
	return fmt.Sprintf("triple(%s, %s, %s)", t.Subject, t.Predicate, t.Object)
}

// Literals returns the non-nil positions in subject, predicate, object
// order.
func (t *Triple) Literals() []*literal.Literal {
	out := make([]*literal.Literal, 0, 3)
	for _, l := range []*literal.Literal{t.Subject, t.Predicate, t.Object} {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

// TripleSequence is the ordered, append-only collection of every triple
// pattern in a query. Graph patterns and BGP nodes address it by column.
type TripleSequence struct {
	triples []*Triple
}

// NewTripleSequence creates an empty sequence.
func NewTripleSequence() *TripleSequence {
	return &TripleSequence{}
}

// Append adds t at the next column and returns that column.
func (s *TripleSequence) Append(t *Triple) int {
	s.triples = append(s.triples, t)
	return len(s.triples) - 1
}

// Len returns the number of triples.
func (s *TripleSequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.triples)
}

// At returns the triple at column i. Out of range panics.
func (s *TripleSequence) At(i int) *Triple {
	return s.triples[i]
}

// Range returns the triples in the inclusive column range [start, end].
// The returned slice aliases the sequence but has no spare capacity, so
// appending to it copies. An empty or out of bounds range yields nil.
func (s *TripleSequence) Range(start, end int) []*Triple {
	if s == nil || start < 0 || end < start || end >= len(s.triples) {
		return nil
	}
	return s.triples[start : end+1 : end+1]
}

// Free releases every triple.
func (s *TripleSequence) Free() {
	if s == nil {
		return
	}
	for _, t := range s.triples {
		t.Free()
	}
	s.triples = nil
}

// String returns the bracketed list of triples.
func (s *TripleSequence) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range s.triples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(']')
	return b.String()
}
