// Package formula provides the accumulator a parser uses while building
// graph patterns: a run of triple patterns paired with an optional value.
package formula

import (
	"io"
	"strings"

	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// Formula owns its triples and its value. Either may be absent.
type Formula struct {
	Triples *query.TripleSequence
	Value   *literal.Literal
}

// New creates an empty formula.
func New() *Formula {
	return &Formula{}
}

// AddTriple appends t, creating the triple collection on first use.
func (f *Formula) AddTriple(t *query.Triple) {
	if f.Triples == nil {
		f.Triples = query.NewTripleSequence()
	}
	f.Triples.Append(t)
}

// Free releases the triples and the value.
func (f *Formula) Free() {
	if f == nil {
		return
	}
	f.Triples.Free()
	f.Triples = nil
	f.Value.Free()
	f.Value = nil
}

// Join merges second into first and returns the survivor. The triples of
// second follow those of first; the value of second is discarded. If
// either operand is nil the other is returned unchanged.
func Join(first, second *Formula) *Formula {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}

	if second.Triples != nil {
		if first.Triples == nil {
			first.Triples = second.Triples
		} else {
			for i := 0; i < second.Triples.Len(); i++ {
				first.Triples.Append(second.Triples.At(i))
			}
		}
		second.Triples = nil
	}
	second.Free()

	return first
}

// Write renders formula(triples=[...], value=...).
func (f *Formula) Write(w io.Writer) error {
	_, err := io.WriteString(w, f.String())
	return err
}

// String returns the debug form of the formula.
func (f *Formula) String() string {
	var b strings.Builder
	b.WriteString("formula(triples=")
	if f.Triples != nil {
		b.WriteString(f.Triples.String())
	} else {
		b.WriteString("[]")
	}
	b.WriteString(", value=")
	if f.Value != nil {
		b.WriteString(f.Value.String())
	} else {
		b.WriteString("NULL")
	}
	b.WriteByte(')')
	return b.String()
}
