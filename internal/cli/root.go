// Package cli is the petrus command line: the interactive wallet plus a few
// housekeeping subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/petrus/internal/app"
	"github.com/jask/petrus/internal/config"
	"github.com/jask/petrus/internal/logging"
	"github.com/jask/petrus/internal/terminal"
)

// Version is set at build time with -ldflags.
var Version = "0.1.0"

type options struct {
	configPath string
}

// NewRootCmd builds the command tree. in and out are the terminal streams.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "petrus",
		Short:         "Interactive DID and verifiable credential wallet",
		Long:          "Petrus walks you through creating DIDs, issuing credentials, presenting them to a verifier and verifying them.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWallet(cmd.Context(), opts, in, out)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $HOME/.config/petrus/config.toml)")
	root.AddCommand(newVersionCmd(), newInitCmd(opts), newResetCmd(opts))
	return root
}

// Execute runs the root command against the process streams.
func Execute() error {
	root := NewRootCmd(os.Stdin, os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, terminal.Error("Error: "+err.Error()))
		return err
	}
	return nil
}

func loadConfig(opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}

func runWallet(ctx context.Context, opts *options, in io.Reader, out io.Writer) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeLog()) }()

	term := terminal.NewConsole(in, out)
	var sess *app.Session
	if err := terminal.Spin(out, "Opening wallet...", func() error {
		var berr error
		sess, berr = app.Bootstrap(ctx, cfg, term, log)
		return berr
	}); err != nil {
		return err
	}
	defer func() { err = errors.Join(err, sess.Close()) }()

	app.Welcome(out, Version)
	return app.New(sess.Context).Run(ctx)
}
