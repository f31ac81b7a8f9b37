package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, extjson/x, bson/b, ir",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "docsink").
		WithSynopsis("docsink [opts] command [opts]").
		WithDescription("docsink builds documents from event streams and BSON.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docsinkMain(cfg, cc, args)
		}).
		WithSubs(
			ReplayCommand(cfg),
			BSONCommand(cfg),
			JSONCommand(cfg),
			EventsCommand(cfg))
}

func ReplayCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReplayConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("replay").
		WithAliases("r").
		WithOpts(opts...).
		WithSynopsis("replay [files]").
		WithDescription("build documents from JSON encoded event streams").
		WithRun(func(cc *cli.Context, args []string) error {
			return replay(cfg, cc, args)
		})
	cfg.Replay = cmd
	return cmd
}

func BSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BSONConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("bson").
		WithAliases("b").
		WithSynopsis("bson [files]").
		WithDescription("copy BSON documents into the document builder").
		WithRun(func(cc *cli.Context, args []string) error {
			return bsonDocs(cfg, cc, args)
		})
	cfg.BSON = cmd
	return cmd
}

func EventsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EventsConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("events").
		WithAliases("e", "ev").
		WithSynopsis("events [files]").
		WithDescription("write the event streams of BSON documents as JSON").
		WithRun(func(cc *cli.Context, args []string) error {
			return events(cfg, cc, args)
		})
	cfg.Events = cmd
	return cmd
}

func JSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("json").
		WithAliases("j").
		WithSynopsis("json [files]").
		WithDescription("build documents from JSON values, e.g. to convert them with -O bson").
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonDocs(cfg, cc, args)
		})
	cfg.JSON = cmd
	return cmd
}
