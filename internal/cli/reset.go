package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/petrus/internal/app"
	"github.com/jask/petrus/internal/logging"
	"github.com/jask/petrus/internal/terminal"
)

func newResetCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored DID, credential and private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if !yes {
				return errors.New("reset deletes all wallet data, rerun with --yes to confirm")
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log, closeLog, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeLog()) }()

			sess, err := app.Bootstrap(cmd.Context(), cfg, terminal.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()), log)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, sess.Close()) }()

			if err := sess.Maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			log.Warn("wallet reset", "db", cfg.Database.Path)
			fmt.Fprintln(cmd.OutOrStdout(), terminal.Success("Wallet reset."))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
