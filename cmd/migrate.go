package cmd

import (
	"openmusic/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		conn, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		return conn.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
