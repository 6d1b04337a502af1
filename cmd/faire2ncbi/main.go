package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	noColor bool
	quiet   bool
	debug   bool
	force   bool
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "faire2ncbi",
	Short: "FAIRe eDNA metadata to NCBI submission converter",
	Long: `faire2ncbi converts FAIRe eDNA metadata workbooks into NCBI submission
tables: BioSample metadata against a MIMARKS template and SRA metadata
against the SRA submission template.

Every interactive answer given during a conversion is recorded into a
configuration file. Supplying that file on a later run replays the
answers, so only new questions prompt.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Convert sample metadata to a BioSample submission table
  faire2ncbi biosample --faire-metadata FAIReMetadata.xlsx --biosample-template MIMARKS.survey.water.6.0.tsv

  # Convert run metadata to an SRA submission table
  faire2ncbi sra --faire-metadata FAIReMetadata.xlsx --sra-template SRA_metadata.xlsx

  # Replay a previous run's answers
  faire2ncbi biosample --faire-metadata FAIReMetadata.xlsx --biosample-template MIMARKS.survey.water.6.0.tsv \
    --config-file BioSampleMetadata_config.yaml`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "Overwrite existing output files without asking")

	// BioSample command flags
	biosampleCmd.Flags().StringVar(&biosampleMetadata, "faire-metadata", "", "FAIRe metadata workbook (xlsx)")
	biosampleCmd.Flags().StringVar(&biosampleTemplate, "biosample-template", "", "MIMARKS BioSample template (tsv)")
	biosampleCmd.Flags().StringVar(&biosampleOutput, "biosample-metadata", "", "Output file (default from tool config)")
	biosampleCmd.Flags().StringVarP(&biosampleConfigFile, "config-file", "c", "", "Recorded-answer configuration to replay")
	biosampleCmd.Flags().StringVar(&biosampleAccession, "bioproject-accession", "", "Bioproject accession applied to every sample")
	biosampleCmd.MarkFlagRequired("faire-metadata")
	biosampleCmd.MarkFlagRequired("biosample-template")

	// SRA command flags
	sraCmd.Flags().StringVar(&sraMetadata, "faire-metadata", "", "FAIRe metadata workbook (xlsx)")
	sraCmd.Flags().StringVar(&sraTemplate, "sra-template", "", "SRA submission template workbook (xlsx)")
	sraCmd.Flags().StringVar(&sraOutput, "sra-metadata", "", "Output file (default from tool config)")
	sraCmd.Flags().StringVarP(&sraConfigFile, "config-file", "c", "", "Recorded-answer configuration to replay")
	sraCmd.MarkFlagRequired("faire-metadata")
	sraCmd.MarkFlagRequired("sra-template")

	// Add commands to root
	rootCmd.AddCommand(biosampleCmd)
	rootCmd.AddCommand(sraCmd)
	rootCmd.AddCommand(configCmd)

	// Add subcommands to config
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
