package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/confmorph/confmorph/codec"
	"github.com/confmorph/confmorph/convert"
	"github.com/confmorph/confmorph/format"
)

type ConvertConfig struct {
	*MainConfig
	Convert *cli.Command

	InFormat, OutFormat *format.Format
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json, yaml, toml",
			Type:        cli.NamedFuncOpt(fmtOpt(&cfg.InFormat), "(format)"),
		},
		{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json, yaml, toml, lua",
			Type:        cli.NamedFuncOpt(fmtOpt(&cfg.OutFormat), "(format)"),
		},
	}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c").
		WithSynopsis("convert -O <format> [-I <format>] [file]").
		WithDescription("convert a configuration file (or stdin) between formats").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runConvert(cfg, cc, args)
		})
}

func runConvert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one input file", cli.ErrUsage)
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	data, err := readInput(name)
	if err != nil {
		return err
	}

	in, err := inputFormat(cfg, name)
	if err != nil {
		return err
	}
	if cfg.OutFormat == nil {
		return fmt.Errorf("%w: -O is required", cli.ErrUsage)
	}
	out := *cfg.OutFormat

	if _, ok := codec.DecoderFor(in); !ok {
		return fmt.Errorf("%w: %v cannot be used as a source format", cli.ErrUsage, in)
	}

	result, cerr := convert.Convert(&convert.Request{
		From:    in,
		To:      out,
		Content: string(data),
	})
	if cerr != nil {
		return convertError(cerr)
	}
	_, err = io.WriteString(cc.Out, result)
	return err
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// inputFormat resolves the source format from -I, falling back to the
// input file's suffix.
func inputFormat(cfg *ConvertConfig, name string) (format.Format, error) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, nil
	}
	if name != "-" {
		suffix := filepath.Ext(name)
		for _, f := range format.AllFormats() {
			if f.Suffix() == suffix {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: cannot infer input format, pass -I", cli.ErrUsage)
}

func convertError(cerr *convert.Error) error {
	msg := fmt.Sprintf("%s: %s", cerr.Code, cerr.Message)
	if cerr.Hint != "" {
		msg += " (hint: " + cerr.Hint + ")"
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = color.RedString("%s", msg)
	}
	return errors.New(msg)
}
