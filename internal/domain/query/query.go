// Package query holds the host-agnostic boolean query tree that index
// backends compile into their native query language.
package query

import (
	"strconv"
	"strings"
)

// Node is a query tree node: Term, Fuzzy, And, Or or Filter.
type Node interface {
	String() string
	node()
}

// Term matches records whose field holds exactly Text.
type Term struct {
	Field string
	Text  string
}

// Fuzzy matches records whose field holds a token within MaxEdits edits of
// Text that shares its first PrefixLength characters.
type Fuzzy struct {
	Field        string
	Text         string
	MaxEdits     int
	PrefixLength int
}

// And requires every clause.
type And struct {
	Clauses []Node
}

// Or requires at least one clause. An empty Or matches nothing.
type Or struct {
	Clauses []Node
}

// Filter restricts eligibility without contributing to relevance.
type Filter struct {
	Clause Node
}

func (Term) node()   {}
func (Fuzzy) node()  {}
func (And) node()    {}
func (Or) node()     {}
func (Filter) node() {}

func (t Term) String() string { return t.Field + ":" + t.Text }

func (f Fuzzy) String() string {
	s := f.Field + ":" + f.Text + "~" + strconv.Itoa(f.MaxEdits)
	if f.PrefixLength > 0 {
		s += "/" + strconv.Itoa(f.PrefixLength)
	}
	return s
}

func (a And) String() string {
	parts := make([]string, 0, len(a.Clauses))
	for _, c := range a.Clauses {
		if _, ok := c.(Filter); ok {
			parts = append(parts, c.String())
			continue
		}
		parts = append(parts, "+"+c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (o Or) String() string {
	parts := make([]string, 0, len(o.Clauses))
	for _, c := range o.Clauses {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (f Filter) String() string {
	if f.Clause == nil {
		return "#()"
	}
	return "#" + f.Clause.String()
}
