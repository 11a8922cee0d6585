package main

import (
	"context"

	"github.com/phanxgames/reveal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newRootCmd builds a fresh command tree. Each call has its own viper
// instance so tests can run commands in isolation.
func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()
	setDefaults(v)

	cmd := &cobra.Command{
		Use:           "revealctl",
		Short:         "Inspect and simulate scroll-reveal pages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			l := newLogger(cfg.Log, cmd.ErrOrStderr())
			cfg.logger = l
			reveal.SetLogger(l)
			reveal.SetDebugMode(cfg.Debug)
			l.Debug("config loaded", zap.String("file", v.ConfigFileUsed()))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey, cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			reveal.SetLogger(nil)
			reveal.SetDebugMode(false)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./revealctl.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this file, rotated")
	pf.Bool("debug", false, "panic on use-after-dispose and log per-frame stats")
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = v.BindPFlag("debug", pf.Lookup("debug"))

	cmd.AddCommand(newSimulateCmd(v))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newEasingsCmd())
	return cmd
}
