package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/encode"
	"github.com/signadot/docsink/format"
	"github.com/signadot/docsink/stream"
)

type MainConfig struct {
	Color     bool `cli:"name=color desc='encode with color'"`
	WireOut   bool `cli:"name=wire desc='output in compact format'"`
	Canonical bool `cli:"name=canonical desc='canonical extended json'"`
	Verbose   bool `cli:"name=v desc='log builder errors'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`
	X bool `cli:"name=x aliases=extjson desc='output extended json'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.X:
		f = format.ExtJSONFormat
	case cfg.J:
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) builderOpts() []stream.BuilderOption {
	return []stream.BuilderOption{stream.WithLogger(theLog)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	if cfg.Main == nil {
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ReplayConfig struct {
	*MainConfig

	Validate bool `cli:"name=n desc='validate only, do not output documents'"`
	Replay   *cli.Command
}

type BSONConfig struct {
	*MainConfig

	BSON *cli.Command
}

type EventsConfig struct {
	*MainConfig

	Events *cli.Command
}

type JSONConfig struct {
	*MainConfig

	JSON *cli.Command
}
