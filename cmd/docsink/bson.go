package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/signadot/docsink/bsondoc"
	"github.com/signadot/docsink/stream"
)

func bsonDocs(cfg *BSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.BSON.Parse(cc, args)
	if err != nil {
		return err
	}
	dw := newDocWriter(cfg.MainConfig, cc.Out)
	return eachInput(args, cc.In, func(name string, r io.Reader) error {
		return eachBSON(r, func(i int, raw bson.Raw) error {
			node, err := bsondoc.Decode(raw, cfg.builderOpts()...)
			if err != nil {
				return fmt.Errorf("%s: document %d: %w", name, i, err)
			}
			return dw.write(node)
		})
	})
}

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		return err
	}
	ew := stream.NewJSONEventWriter(cc.Out)
	return eachInput(args, cc.In, func(name string, r io.Reader) error {
		return eachBSON(r, func(i int, raw bson.Raw) error {
			if err := writeEvents(raw, ew); err != nil {
				return fmt.Errorf("%s: document %d: %w", name, i, err)
			}
			return nil
		})
	})
}

func writeEvents(raw bson.Raw, sink stream.EventSink) error {
	c, err := bsondoc.NewCursor(raw)
	if err != nil {
		return err
	}
	for ev := c.Current(); ; {
		if err := sink.WriteEvent(ev); err != nil {
			return err
		}
		ev, err = c.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// eachBSON calls f for each of the concatenated BSON documents in r.
func eachBSON(r io.Reader, f func(int, bson.Raw) error) error {
	for i := 0; ; i++ {
		raw, err := bson.NewFromIOReader(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading document %d: %w", i, err)
		}
		if err := f(i, raw); err != nil {
			return err
		}
	}
}
