package query

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/signadot/docsink/debug"
	"github.com/signadot/docsink/ir"
	"github.com/signadot/docsink/stream"
)

var ErrQuery = errors.New("invalid query")

// Compile writes the filter document of q to b.
//
// Clauses on the same field are merged into one operator document in the
// order they were added, so Gte("n", 1).Lt("n", 9) gives
// {n: {$gte: 1, $lt: 9}}. Repeating an operator on a field, or an
// equality, keeps the last value. A field cannot mix equality with
// operators.
//
// Logical clauses render as {$and: [...]} with one document per operand.
// Repeated logical clauses of the same operator share one array.
func Compile(q *Query, b *stream.Builder) error {
	c := &compiler{b: b}
	return c.query(q)
}

// ToNode compiles q into a new filter document.
func ToNode(q *Query, opts ...stream.BuilderOption) (*ir.Node, error) {
	b := stream.NewBuilder(opts...)
	if err := Compile(q, b); err != nil {
		return nil, err
	}
	node, err := b.Object()
	if err != nil {
		return nil, err
	}
	if debug.Query() {
		debug.Logf("query with %d clauses compiled to %s", q.Len(), debug.Doc{Node: node})
	}
	return node, nil
}

type compiler struct {
	b *stream.Builder
}

type group struct {
	field   string
	clauses []Clause
}

func groups(q *Query) ([]*group, error) {
	var res []*group
	idx := map[string]*group{}
	for _, cl := range q.clauses {
		if cl.Cond == nil {
			return nil, fmt.Errorf("%w: clause %q %q has no condition", ErrQuery, cl.Field, cl.Op)
		}
		key := cl.Field
		if cl.Op.IsLogical() {
			if cl.Field != "" {
				return nil, fmt.Errorf("%w: %s clause with field %q", ErrQuery, cl.Op, cl.Field)
			}
			key = string(cl.Op)
		}
		g := idx[key]
		if g == nil {
			g = &group{field: key}
			idx[key] = g
			res = append(res, g)
		}
		if len(g.clauses) != 0 && (g.clauses[0].Op == OpEq) != (cl.Op == OpEq) {
			return nil, fmt.Errorf("%w: field %q mixes equality with operators", ErrQuery, cl.Field)
		}
		g.clauses = append(g.clauses, cl)
	}
	return res, nil
}

func (c *compiler) query(q *Query) error {
	if q == nil {
		return fmt.Errorf("%w: nil query", ErrQuery)
	}
	gs, err := groups(q)
	if err != nil {
		return err
	}
	if err := c.b.BeginObject(); err != nil {
		return err
	}
	for _, g := range gs {
		if err := c.group(g); err != nil {
			return fmt.Errorf("%s: %w", g.field, err)
		}
	}
	return c.b.EndObject()
}

func (c *compiler) group(g *group) error {
	first := g.clauses[0]
	switch {
	case first.Op.IsLogical():
		if err := c.b.WriteKey(g.field); err != nil {
			return err
		}
		return c.logical(g.clauses)
	case first.Op == OpEq:
		for _, cl := range g.clauses {
			if err := c.b.WriteKey(g.field); err != nil {
				return err
			}
			if err := c.equality(cl.Cond); err != nil {
				return err
			}
		}
		return nil
	}
	if err := c.b.WriteKey(g.field); err != nil {
		return err
	}
	if err := c.b.BeginObject(); err != nil {
		return err
	}
	for _, cl := range g.clauses {
		if err := c.b.WriteKey(string(cl.Op)); err != nil {
			return err
		}
		if err := c.cond(cl.Cond); err != nil {
			return err
		}
	}
	return c.b.EndObject()
}

// logical writes the operands of every clause in a logical group as one
// array, so repeating And keeps all of its operands.
func (c *compiler) logical(clauses []Clause) error {
	var operands []Condition
	for _, cl := range clauses {
		cc, ok := cl.Cond.(*CollectionCondition)
		if !ok {
			return fmt.Errorf("%w: logical operands must be a collection, got %T", ErrQuery, cl.Cond)
		}
		for _, v := range cc.values {
			if _, ok := v.(*CompoundCondition); !ok {
				return fmt.Errorf("%w: logical operand %T is not a query", ErrQuery, v)
			}
		}
		operands = append(operands, cc.values...)
	}
	return c.collection(&CollectionCondition{values: operands, targetIsCollection: true})
}

// equality writes the value of an equality clause. A collection whose
// target is not a collection matches any member.
func (c *compiler) equality(cond Condition) error {
	cc, ok := cond.(*CollectionCondition)
	if !ok || cc.targetIsCollection {
		return c.cond(cond)
	}
	if err := c.b.BeginObject(); err != nil {
		return err
	}
	if err := c.b.WriteKey(string(OpIn)); err != nil {
		return err
	}
	if err := c.collection(cc); err != nil {
		return err
	}
	return c.b.EndObject()
}

func (c *compiler) cond(cond Condition) error {
	switch x := cond.(type) {
	case *ValueCondition:
		return c.value(x.Value)
	case *CompoundCondition:
		return c.query(x.Query)
	case *CollectionCondition:
		return c.collection(x)
	case nil:
		return fmt.Errorf("%w: nil condition", ErrQuery)
	}
	return fmt.Errorf("%w: unknown condition %T", ErrQuery, cond)
}

func (c *compiler) collection(cc *CollectionCondition) error {
	if err := c.b.BeginArray(); err != nil {
		return err
	}
	for i, v := range cc.values {
		if err := c.cond(v); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return c.b.EndArray()
}

func (c *compiler) value(v any) error {
	b := c.b
	switch x := v.(type) {
	case nil:
		return b.WriteNull()
	case bool:
		return b.WriteBool(x)
	case string:
		return b.WriteString(x)
	case int8:
		return b.WriteInt32(int32(x))
	case int16:
		return b.WriteInt32(int32(x))
	case int32:
		return b.WriteInt32(x)
	case uint8:
		return b.WriteInt32(int32(x))
	case uint16:
		return b.WriteInt32(int32(x))
	case int:
		return b.WriteInt64(int64(x))
	case int64:
		return b.WriteInt64(x)
	case uint32:
		return b.WriteInt64(int64(x))
	case uint:
		return c.writeUint(uint64(x))
	case uint64:
		return c.writeUint(x)
	case float32:
		return b.WriteFloat32(x)
	case float64:
		return b.WriteFloat64(x)
	case *big.Int:
		return b.WriteBigInt(x)
	case decimal.Decimal:
		return b.WriteDecimal(x)
	case []byte:
		return b.WriteBytes(x)
	case *ir.Node:
		return c.node(x)
	}
	return b.WriteObject(v)
}

func (c *compiler) writeUint(x uint64) error {
	if x <= math.MaxInt64 {
		return c.b.WriteInt64(int64(x))
	}
	return c.b.WriteBigInt(new(big.Int).SetUint64(x))
}

// node copies a document value into the filter.
func (c *compiler) node(n *ir.Node) error {
	if n == nil {
		return c.b.WriteNull()
	}
	events, err := stream.NodeToEvents(n)
	if err != nil {
		return err
	}
	cur, err := stream.NewCursor(stream.NewSliceReader(events))
	if err != nil {
		return err
	}
	return stream.CopyStructure(cur, c.b)
}
