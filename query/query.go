package query

import (
	"bytes"
	"slices"

	"github.com/signadot/docsink/encode"
)

// Op is a query operator keyword.
type Op string

const (
	OpEq        Op = ""
	OpNe        Op = "$ne"
	OpGt        Op = "$gt"
	OpGte       Op = "$gte"
	OpLt        Op = "$lt"
	OpLte       Op = "$lte"
	OpIn        Op = "$in"
	OpNin       Op = "$nin"
	OpAll       Op = "$all"
	OpExists    Op = "$exists"
	OpElemMatch Op = "$elemMatch"
	OpAnd       Op = "$and"
	OpOr        Op = "$or"
	OpNor       Op = "$nor"
)

// IsLogical reports whether op combines whole queries rather than
// testing a field.
func (op Op) IsLogical() bool {
	switch op {
	case OpAnd, OpOr, OpNor:
		return true
	}
	return false
}

// Clause tests Field with Op against Cond. Logical clauses have no field.
type Clause struct {
	Field string
	Op    Op
	Cond  Condition
}

// Query is an ordered list of clauses, all of which must hold.
//
// The builder methods append a clause and return q, so queries chain:
//
//	q := query.New().Is("kind", "user").Gte("age", 18).In("tags", "a", "b")
type Query struct {
	clauses []Clause
}

func New() *Query {
	return &Query{}
}

// Clauses returns a copy of the clauses of q.
func (q *Query) Clauses() []Clause {
	return slices.Clone(q.clauses)
}

func (q *Query) Len() int {
	return len(q.clauses)
}

// Put appends the clause {field, op, cond}.
func (q *Query) Put(field string, op Op, cond Condition) *Query {
	q.clauses = append(q.clauses, Clause{Field: field, Op: op, Cond: cond})
	return q
}

// Is matches documents whose field equals v. A *CollectionCondition
// value is compared as a sequence when its target is a collection and
// matched against any member otherwise.
func (q *Query) Is(field string, v any) *Query {
	return q.Put(field, OpEq, ConditionOf(v))
}

func (q *Query) Ne(field string, v any) *Query {
	return q.Put(field, OpNe, ConditionOf(v))
}

func (q *Query) Gt(field string, v any) *Query {
	return q.Put(field, OpGt, ConditionOf(v))
}

func (q *Query) Gte(field string, v any) *Query {
	return q.Put(field, OpGte, ConditionOf(v))
}

func (q *Query) Lt(field string, v any) *Query {
	return q.Put(field, OpLt, ConditionOf(v))
}

func (q *Query) Lte(field string, v any) *Query {
	return q.Put(field, OpLte, ConditionOf(v))
}

// In matches documents whose field equals any of vs.
func (q *Query) In(field string, vs ...any) *Query {
	return q.Put(field, OpIn, AnyOf(vs...))
}

func (q *Query) NotIn(field string, vs ...any) *Query {
	return q.Put(field, OpNin, AnyOf(vs...))
}

// All matches documents whose collection field contains every one of vs.
func (q *Query) All(field string, vs ...any) *Query {
	return q.Put(field, OpAll, NewCollectionOf(conditions(vs), true))
}

func (q *Query) Exists(field string, exists bool) *Query {
	return q.Put(field, OpExists, &ValueCondition{Value: exists})
}

// ElemMatch matches documents with an element of the collection field
// satisfying sub.
func (q *Query) ElemMatch(field string, sub *Query) *Query {
	return q.Put(field, OpElemMatch, &CompoundCondition{Query: sub})
}

func (q *Query) And(qs ...*Query) *Query {
	return q.logical(OpAnd, qs)
}

func (q *Query) Or(qs ...*Query) *Query {
	return q.logical(OpOr, qs)
}

func (q *Query) Nor(qs ...*Query) *Query {
	return q.logical(OpNor, qs)
}

func (q *Query) logical(op Op, qs []*Query) *Query {
	cc := NewCollection()
	for _, sub := range qs {
		cc.Add(&CompoundCondition{Query: sub})
	}
	return q.Put("", op, cc)
}

// String renders the compiled filter document as single line JSON, or
// the compile error.
func (q *Query) String() string {
	node, err := ToNode(q)
	if err != nil {
		return "!" + err.Error()
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return "!" + err.Error()
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
