package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ncbi/internal/configfile"
	"github.com/oceanomics/faire2ncbi/internal/export"
	"github.com/oceanomics/faire2ncbi/internal/faire"
	"github.com/oceanomics/faire2ncbi/internal/prompt"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/runinfo"
	"github.com/oceanomics/faire2ncbi/internal/sra"
	"github.com/oceanomics/faire2ncbi/internal/ui"
)

var (
	sraMetadata   string
	sraTemplate   string
	sraOutput     string
	sraConfigFile string
)

var sraCmd = &cobra.Command{
	Use:   "sra",
	Short: "Convert FAIRe run metadata to an SRA submission table",
	Long: `Converts the experimentRunMetadata sheet of a FAIRe workbook into the
column layout of the NCBI SRA submission template. Platform and
instrument model values come from the projectMetadata sheet; assay
selection, library fields, and any conflicting or missing values are
settled interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSRA()
	},
}

func runSRA() error {
	cfg := loadToolConfig()
	run := runinfo.New()
	printDebug("run %s", run.ID)

	outputPath := sraOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Output.Directory, cfg.Output.SRAFilename)
	}

	p := prompt.New()
	store, _, replayOn := loadAnswers(replay.ModeSRA, sraConfigFile, p)
	log := replay.NewLog()
	log.SetExpeditionOrder(cfg.Expeditions)
	res := replay.NewResolver(store, log, replayOn)

	// The recorded answers always save to the path derived from the
	// output file; settle its fate before any conversion work.
	cfgTarget := configfile.DerivedConfigPath(outputPath)
	ok, err := confirmConfigTarget(res, p, cfgTarget)
	if err != nil {
		return err
	}
	if !ok {
		printWarning("Not overwriting configuration file %s; aborting with nothing written.", cfgTarget)
		return nil
	}

	var (
		runs    *faire.Table
		samples *faire.Table
		project *faire.Project
	)
	err = ui.ShowSpinner("Reading FAIRe metadata workbook", func() error {
		wb, err := faire.Open(sraMetadata)
		if err != nil {
			return err
		}
		defer wb.Close()
		if runs, err = wb.ExperimentRunMetadata(); err != nil {
			return err
		}
		// Sample and project metadata only enrich titles and platform
		// values; their absence is survivable.
		if samples, err = wb.SampleMetadata(); err != nil {
			printWarning("No usable sampleMetadata sheet: %v", err)
			samples = nil
		}
		if project, err = wb.ProjectMetadata(); err != nil {
			printWarning("No usable projectMetadata sheet: %v", err)
			project = nil
		}
		return nil
	})
	if err != nil {
		printError("Reading %s: %v", sraMetadata, err)
		return err
	}
	printInfo("Read %d runs with %d columns.", runs.Len(), len(runs.Columns))

	columns, err := faire.SRATemplateColumns(sraTemplate)
	if err != nil {
		printError("Reading template %s: %v", sraTemplate, err)
		return err
	}
	printDebug("SRA template carries %d columns", len(columns))

	ok, err = confirmOverwrite(res, p, outputPath)
	if err != nil {
		return err
	}
	if !ok {
		printWarning("Not overwriting %s; nothing written.", outputPath)
		return nil
	}

	table, err := sra.New(runs, samples, project, columns, res, p, os.Stdout).Convert()
	if err != nil {
		printError("Conversion failed: %v", err)
		return err
	}

	stats, err := export.NewExporter().WriteTSV(table, outputPath)
	if err != nil {
		printError("Writing %s: %v", outputPath, err)
		return err
	}
	printSuccess("Wrote %s (%d rows, %d columns) in %s", outputPath, stats.Rows, stats.Columns, stats.Duration.Round(time.Millisecond))
	run.AddGeneratedFile(outputPath, "SRA metadata table")

	saveAnswers(store, log, run, cfgTarget)
	return nil
}
