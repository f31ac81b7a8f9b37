package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/gomap"
)

func jsonDocs(cfg *JSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSON.Parse(cc, args)
	if err != nil {
		return err
	}
	dw := newDocWriter(cfg.MainConfig, cc.Out)
	return eachInput(args, cc.In, func(name string, r io.Reader) error {
		c := gomap.NewJSONCursor(r)
		for i := 0; ; i++ {
			node, err := gomap.ReadNode(c, cfg.builderOpts()...)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: document %d: %w", name, i, err)
			}
			if err := dw.write(node); err != nil {
				return fmt.Errorf("%s: error encoding document %d: %w", name, i, err)
			}
		}
	})
}
