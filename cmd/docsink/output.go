package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/docsink/bsondoc"
	"github.com/signadot/docsink/encode"
	"github.com/signadot/docsink/ir"
)

// docWriter writes a sequence of documents in the configured output
// format.
type docWriter struct {
	cfg *MainConfig
	w   io.Writer
	n   int
}

func newDocWriter(cfg *MainConfig, w io.Writer) *docWriter {
	return &docWriter{cfg: cfg, w: w}
}

func (dw *docWriter) write(node *ir.Node) error {
	defer func() { dw.n++ }()
	f := dw.cfg.outFormat()
	switch {
	case f.IsBSON():
		d, err := bsondoc.Marshal(node)
		if err != nil {
			return err
		}
		_, err = dw.w.Write(d)
		return err
	case f.IsExtJSON():
		d, err := bsondoc.MarshalExtJSON(node, dw.cfg.Canonical)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(dw.w, "%s\n", d)
		return err
	case f.IsIR():
		d, err := json.Marshal(node)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(dw.w, "%s\n", d)
		return err
	case f.IsYAML() && dw.n > 0:
		if _, err := io.WriteString(dw.w, "---\n"); err != nil {
			return err
		}
	}
	return encode.Encode(node, dw.w, dw.cfg.encOpts(dw.w)...)
}
