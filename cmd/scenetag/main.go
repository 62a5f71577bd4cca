// Package main is the entry point for the scenetag plugin.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenetag/internal/config"
	"github.com/scenekit/scenetag/internal/graphql"
	"github.com/scenekit/scenetag/internal/logging"
	"github.com/scenekit/scenetag/internal/plugin"
	"github.com/scenekit/scenetag/internal/task"
)

const defaultConfigPath = "scenetag.yml"

var rootCmd = &cobra.Command{
	Use:   "scenetag [mode]",
	Short: "Scene tag-management plugin for the media server host",
	Long: `scenetag is launched by the media server host with a JSON envelope on
standard input and drives the host's GraphQL API on its behalf. Passing a
mode argument instead runs the plugin by hand against a local server,
bypassing session-cookie authentication.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run executes one plugin invocation. The terminal envelope is written in
// every case, including failures; a populated error field also surfaces as a
// nonzero exit status.
func run(argv []string) error {
	cfg := loadConfig()
	log := logging.New(os.Stdout)

	// The host cancels work by terminating the process; trap the polite
	// signals so the indefinite task still ends with a terminal envelope.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := execute(ctx, cfg, log, argv)

	if err := plugin.WriteOutput(os.Stdout, out); err != nil {
		return err
	}
	if out.Error != "" {
		return errors.New(out.Error)
	}
	return nil
}

// execute runs the single requested operation and folds any failure into the
// terminal envelope's error field.
func execute(ctx context.Context, cfg *config.Config, log *logging.Logger, argv []string) plugin.Output {
	fallback := plugin.ServerConnection{
		Scheme: cfg.Fallback.Scheme,
		Port:   cfg.Fallback.Port,
	}

	in, err := plugin.ReadInput(os.Stdin, argv, fallback)
	if err != nil {
		return plugin.Output{Error: err.Error()}
	}
	log.Debugf("Raw input: mode=%q endpoint=%s://localhost:%d",
		in.Args.Mode(), in.ServerConnection.Scheme, in.ServerConnection.Port)

	mode, err := task.ParseMode(in.Args.Mode())
	if err != nil {
		return plugin.Output{Error: err.Error()}
	}

	var cookie string
	if in.ServerConnection.SessionCookie != nil {
		cookie = in.ServerConnection.SessionCookie.Value
	}

	client, err := graphql.NewHTTPClient(graphql.Config{
		Scheme:        in.ServerConnection.Scheme,
		Port:          in.ServerConnection.Port,
		SessionCookie: cookie,
		Timeout:       time.Duration(cfg.GraphQL.Timeout) * time.Second,
	})
	if err != nil {
		return plugin.Output{Error: err.Error()}
	}

	runner := task.NewRunner(client, log, task.Options{
		TagName:       cfg.Tag.Name,
		LongTaskSteps: cfg.LongTask.Steps,
		StepInterval:  time.Duration(cfg.LongTask.IntervalMS) * time.Millisecond,
	})

	if err := runner.Run(ctx, mode); err != nil {
		return plugin.Output{Error: err.Error()}
	}
	return plugin.Output{Output: "ok"}
}

// loadConfig reads the config file named by SCENETAG_CONFIG_PATH or the
// default path. The host does not ship a config file, so a missing or
// unreadable file silently yields the defaults.
func loadConfig() *config.Config {
	path := os.Getenv("SCENETAG_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if cfg.Fallback.Scheme == "" {
		cfg.Fallback.Scheme = "http"
	}
	if cfg.Fallback.Port <= 0 {
		cfg.Fallback.Port = 9999
	}

	config.ApplyEnvOverrides(cfg)
	return cfg
}
