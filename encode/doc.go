// Package encode renders documents as JSON or YAML text for inspection.
//
// JSON output keeps object keys in document order and prints numbers with
// the precision of their kind. Driver formats (BSON, extended JSON) are
// produced by package bsondoc.
package encode
