package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/go-graph-bench/config"
)

var recreateDB bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the graph tables and migrate them again",
	Long: `Drop and recreate the public schema, reset session settings and migrate
the graph_adjacency and generation_runs tables. With --recreate the whole
database is dropped and created first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadDBConfig()
		if err != nil {
			return err
		}
		if recreateDB {
			if err := config.DropAndRecreateDatabase(cfg); err != nil {
				return err
			}
		}
		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}
		if err := config.ResetDatabase(db); err != nil {
			return err
		}
		log.Info().Str("database", cfg.DBName).Msg("database reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&recreateDB, "recreate", false, "drop and create the database itself")
}
