// Command graphgen generates synthetic uniform or power-law graphs and bulk
// loads their encoded adjacency into Postgres.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "graphgen",
	Short: "Generate and load synthetic benchmark graphs",
	Long: `Generate synthetic graphs with uniform or Pareto out-degree distributions,
encode each node's adjacency into the binary load format and write it to
Postgres (or to an in-memory graph for inspection).

Configuration comes from GRAPHGEN_* and DB_* environment variables, a .env
file, and the flags below, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(generateCmd, statsCmd, resetCmd)
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("graphgen failed")
	}
}
