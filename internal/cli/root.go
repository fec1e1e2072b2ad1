// Package cli implements the cardscan command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/cardscan/internal/common"
)

func Execute(version string) error {
	return NewRoot(version).Execute()
}

func NewRoot(version string) *cobra.Command {
	a := &app{v: common.NewViper(), version: version}
	root := &cobra.Command{
		Use:           "cardscan",
		Short:         "Turn business card scans into structured contacts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./cardscan.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("db", "", "database DSN (postgres://..., sqlite://path, :memory:); empty disables persistence")
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("database.dsn", pf.Lookup("db"))

	root.AddCommand(
		a.parseCmd(),
		a.scanCmd(),
		a.batchCmd(),
		a.watchCmd(),
		a.mcpCmd(),
		a.versionCmd(),
	)
	return root
}
