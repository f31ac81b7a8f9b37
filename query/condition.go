package query

import (
	"slices"

	"github.com/signadot/docsink/ir"
)

// Condition is the right hand side of a query clause. It is one of
// *ValueCondition, *CompoundCondition or *CollectionCondition.
type Condition interface {
	isCondition()
}

// ValueCondition compares against a single value.
type ValueCondition struct {
	Value any
}

func (*ValueCondition) isCondition() {}

// CompoundCondition nests a whole query, as in the operands of And or the
// argument of ElemMatch.
type CompoundCondition struct {
	Query *Query
}

func (*CompoundCondition) isCondition() {}

// CollectionCondition is an ordered sequence of conditions. Conditions are
// only ever appended; the sequence is never reordered or shortened.
//
// TargetIsCollection records whether the matched field itself holds a
// collection. The compiler uses it to decide between matching the field
// against the sequence as a whole and matching it against any member.
type CollectionCondition struct {
	values             []Condition
	targetIsCollection bool
}

func (*CollectionCondition) isCondition() {}

// NewCollection returns an empty collection whose target is not a
// collection.
func NewCollection() *CollectionCondition {
	return &CollectionCondition{}
}

// NewCollectionOf returns a collection holding a copy of values.
func NewCollectionOf(values []Condition, targetIsCollection bool) *CollectionCondition {
	return &CollectionCondition{
		values:             slices.Clone(values),
		targetIsCollection: targetIsCollection,
	}
}

// Add appends c.
func (cc *CollectionCondition) Add(c Condition) *CollectionCondition {
	cc.values = append(cc.values, c)
	return cc
}

// AddAll appends cs in order.
func (cc *CollectionCondition) AddAll(cs ...Condition) *CollectionCondition {
	cc.values = append(cc.values, cs...)
	return cc
}

// Values returns the conditions in insertion order. The returned slice is
// a copy.
func (cc *CollectionCondition) Values() []Condition {
	return slices.Clone(cc.values)
}

func (cc *CollectionCondition) Len() int {
	return len(cc.values)
}

func (cc *CollectionCondition) TargetIsCollection() bool {
	return cc.targetIsCollection
}

// Array returns a collection of vs matched as a whole against a field
// holding a collection.
func Array(vs ...any) *CollectionCondition {
	return NewCollectionOf(conditions(vs), true)
}

// AnyOf returns a collection of vs matched against each member.
func AnyOf(vs ...any) *CollectionCondition {
	return NewCollectionOf(conditions(vs), false)
}

// ConditionOf wraps v as a Condition. Conditions are returned as is and
// queries become compound conditions. Document nodes are cloned, so later
// changes to them do not reach the query.
func ConditionOf(v any) Condition {
	switch x := v.(type) {
	case Condition:
		return x
	case *Query:
		return &CompoundCondition{Query: x}
	case *ir.Node:
		if x != nil {
			return &ValueCondition{Value: x.Clone()}
		}
	}
	return &ValueCondition{Value: v}
}

func conditions(vs []any) []Condition {
	res := make([]Condition, len(vs))
	for i, v := range vs {
		res[i] = ConditionOf(v)
	}
	return res
}
