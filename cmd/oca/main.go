package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/course-analyzer/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "oca",
		Short: "Online Course Analyzer - participation, rankings and recommendations",
		Long: `oca (Online Course Analyzer) loads a dataset of online course offerings
(one CSV row per offering) and answers analytical queries over it:
participation totals per institution and subject, instructor course lists,
top-K rankings, filtered search and demographic course recommendations.

The dataset is loaded once per invocation and never modified.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/oca.yaml)")
	rootCmd.PersistentFlags().StringP("dataset", "d", "", "course dataset CSV file")
	rootCmd.PersistentFlags().Bool("lenient", false, "skip malformed rows instead of aborting the load")
	rootCmd.PersistentFlags().String("events", "", "directory for JSONL event logs (disabled when empty)")
	rootCmd.PersistentFlags().String("db", "oca-export.db", "SQLite export database file")
	rootCmd.PersistentFlags().Bool("json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	for _, key := range []string{"dataset", "lenient", "events", "db", "json", "verbose", "quiet"} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("oca")
		viper.SetConfigType("yaml")
	}

	// OCA_DATASET, OCA_LENIENT, ...
	viper.SetEnvPrefix("OCA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		util.DebugLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
