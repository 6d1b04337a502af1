package main

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ncbi/internal/biosample"
	"github.com/oceanomics/faire2ncbi/internal/configfile"
	"github.com/oceanomics/faire2ncbi/internal/export"
	"github.com/oceanomics/faire2ncbi/internal/faire"
	"github.com/oceanomics/faire2ncbi/internal/prompt"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/runinfo"
	"github.com/oceanomics/faire2ncbi/internal/ui"
)

var (
	biosampleMetadata   string
	biosampleTemplate   string
	biosampleOutput     string
	biosampleConfigFile string
	biosampleAccession  string
)

var biosampleCmd = &cobra.Command{
	Use:   "biosample",
	Short: "Convert FAIRe sample metadata to a BioSample submission table",
	Long: `Converts the sampleMetadata sheet of a FAIRe workbook into the column
layout of a MIMARKS BioSample template. Columns are mapped where the
FAIRe term is known; bioproject accessions, empty mandatory fields,
measurement units, duplicate rows, sample titles, and extra columns
are settled interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBioSample()
	},
}

func runBioSample() error {
	cfg := loadToolConfig()
	run := runinfo.New()
	printDebug("run %s", run.ID)

	outputPath := biosampleOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Output.Directory, cfg.Output.BioSampleFilename)
	}

	p := prompt.New()
	store, _, replayOn := loadAnswers(replay.ModeBioSample, biosampleConfigFile, p)
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

	var sample *faire.Table
	err = ui.ShowSpinner("Reading FAIRe metadata workbook", func() error {
		wb, err := faire.Open(biosampleMetadata)
		if err != nil {
			return err
		}
		defer wb.Close()
		sample, err = wb.SampleMetadata()
		return err
	})
	if err != nil {
		printError("Reading %s: %v", biosampleMetadata, err)
		return err
	}
	printInfo("Read %d samples with %d columns.", sample.Len(), len(sample.Columns))

	tmpl, err := biosample.ReadTemplate(biosampleTemplate)
	if err != nil {
		printError("Reading template %s: %v", biosampleTemplate, err)
		return err
	}

	ok, err = confirmOverwrite(res, p, outputPath)
	if err != nil {
		return err
	}
	if !ok {
		printWarning("Not overwriting %s; nothing written.", outputPath)
		return nil
	}

	table, err := biosample.New(sample, tmpl, res, p, os.Stdout).Convert(biosampleAccession)
	if err != nil {
		if goerrors.Is(err, biosample.ErrAborted) {
			printWarning("Conversion aborted; no output written.")
			return nil
		}
		printError("Conversion failed: %v", err)
		return err
	}

	stats, err := export.NewExporter().WriteTSV(table, outputPath)
	if err != nil {
		printError("Writing %s: %v", outputPath, err)
		return err
	}
	printSuccess("Wrote %s (%d rows, %d columns) in %s", outputPath, stats.Rows, stats.Columns, stats.Duration.Round(time.Millisecond))
	run.AddGeneratedFile(outputPath, "BioSample metadata table")

	saveAnswers(store, log, run, cfgTarget)
	return nil
}
