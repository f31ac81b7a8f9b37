// Package query models filter conditions and compiles them into filter
// documents.
//
// A Query is an ordered list of clauses built by chaining:
//
//	q := query.New().In("strings", "argh")
//	doc, err := query.ToNode(q) // {strings: {$in: [argh]}}
//
// Conditions are values, nested queries or collections of conditions. A
// CollectionCondition records whether the field it is matched against
// holds a collection; equality against such a collection compares the
// whole sequence, otherwise it matches any member with $in.
//
// Queries are built once and then only read; compiling does not modify
// them.
package query
