package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"
	"github.com/scott-cotton/cli"

	"github.com/confmorph/confmorph/server"
)

type ServeConfig struct {
	*MainConfig
	Serve *cli.Command

	Addr    string `cli:"name=addr desc='TCP listen address' default=:8472"`
	APIKey  string `cli:"name=api-key desc='require this X-Api-Key header value on /convert'"`
	EnvFile string `cli:"name=env-file desc='env file to load before reading CONFMORPH_* variables'"`
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Addr: ":8472"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithAliases("s").
		WithSynopsis("serve [-addr <addr>] [-api-key <key>] [-env-file <path>]").
		WithDescription("run the conversion HTTP server").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Serve.Parse(cc, args); err != nil {
		return err
	}
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		// a .env next to the binary is optional
		_ = godotenv.Load()
	}
	if v := os.Getenv("CONFMORPH_ADDR"); v != "" && cfg.Addr == ":8472" {
		cfg.Addr = v
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("CONFMORPH_API_KEY")
	}

	// Start gops agent for debugging
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintf(cc.Out, "\nShutting down...\n")
		cancel()
	}()

	srv := server.New(&server.Config{
		Addr:   cfg.Addr,
		APIKey: cfg.APIKey,
	})
	return srv.Start(ctx)
}
