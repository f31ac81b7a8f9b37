// Package bsondoc connects documents to the MongoDB Go driver.
//
// ToBSON, Document and Marshal hand a finished ir.Node to the driver as
// bson.D, keeping key order and numeric subtypes. Cursor goes the other way,
// presenting an encoded BSON document as stream events so it can be copied
// into a stream.Builder.
package bsondoc
