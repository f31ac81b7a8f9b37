// Package format names the document formats the docsink tools read and
// write.
package format
