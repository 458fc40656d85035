package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/confmorph/confmorph/codec"
	"github.com/confmorph/confmorph/format"
)

type MainConfig struct {
	Out      string
	CloseOut func() error

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts := []*cli.Opt{
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
	}
	return cli.NewCommandAt(&cfg.Main, "confmorph").
		WithSynopsis("confmorph [opts] command [opts]").
		WithDescription("confmorph converts configuration text between json, yaml, toml, and lua.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return confmorphMain(cfg, cc, args)
		}).
		WithSubs(
			ServeCommand(cfg),
			ConvertCommand(cfg),
			FormatsCommand(cfg))
}

func confmorphMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func fmtOpt(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

type FormatsConfig struct {
	*MainConfig
	Formats *cli.Command
}

func FormatsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Formats, "formats").
		WithAliases("f").
		WithSynopsis("formats").
		WithDescription("list supported formats and conversion directions").
		WithRun(func(cc *cli.Context, args []string) error {
			return listFormats(cfg, cc, args)
		})
}

func listFormats(cfg *FormatsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Formats.Parse(cc, args); err != nil {
		return err
	}
	for _, f := range format.AllFormats() {
		_, src := codec.DecoderFor(f)
		_, dst := codec.EncoderFor(f)
		fmt.Fprintf(cc.Out, "%-6s source=%-5v target=%v\n", f, src, dst)
	}
	return nil
}
