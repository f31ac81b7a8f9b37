package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/stream"
)

func replay(cfg *ReplayConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replay.Parse(cc, args)
	if err != nil {
		return err
	}
	dw := newDocWriter(cfg.MainConfig, cc.Out)
	return eachInput(args, cc.In, func(name string, r io.Reader) error {
		if err := replayReader(cfg, dw, r); err != nil {
			return fmt.Errorf("error processing %s: %w", name, err)
		}
		return nil
	})
}

// replayReader builds one document after another from the events in r.
func replayReader(cfg *ReplayConfig, dw *docWriter, r io.Reader) error {
	er := stream.NewJSONEventReader(r)
	for i := 0; ; i++ {
		node, err := stream.ReadNode(er, cfg.builderOpts()...)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		theLog.Debug("replayed", "doc", i, "type", node.Type)
		if cfg.Validate {
			continue
		}
		if err := dw.write(node); err != nil {
			return fmt.Errorf("error encoding document %d: %w", i, err)
		}
	}
}
