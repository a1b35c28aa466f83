// Package main provides the refgenome-id command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "refgenome-id",
	Short: "Identify which reference genome a sequence dictionary was built against",
	Long: `refgenome-id matches the sequence dictionary of a SAM/BAM/CRAM header,
FASTA index, VCF, or assembly report against a catalog of known human
reference genomes and reports the best candidate matches, with
actionable suggestions when the match is imperfect.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Identify the reference a BAM's header was built against
  samtools view -H input.bam | refgenome-id identify -

  # Identify from a VCF, printing the full per-contig breakdown
  refgenome-id identify --explain input.vcf

  # Validate a hand-authored catalog file
  refgenome-id catalog validate mycatalog.json

  # Serve the matcher over HTTP
  refgenome-id serve --port 8080`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.refgenome-id.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "path to a catalog file (JSON, YAML, or a .duckdb/.ddb store); defaults to the embedded starter catalog")
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(newIdentifyCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".refgenome-id")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REFGENOME_ID")
	viper.AutomaticEnv()

	// A missing config file is not an error: every setting has a
	// built-in default (DefaultMatchingConfig, the embedded catalog).
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
