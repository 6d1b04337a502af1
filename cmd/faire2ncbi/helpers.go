package main

import (
	"fmt"
	"os"
	"time"

	"github.com/oceanomics/faire2ncbi/internal/config"
	"github.com/oceanomics/faire2ncbi/internal/configfile"
	"github.com/oceanomics/faire2ncbi/internal/prompt"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/runinfo"
)

// Color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Check if output is to terminal
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Apply color if terminal output and color enabled
func colorize(color, text string) string {
	if !noColor && isTerminal() && os.Getenv("NO_COLOR") == "" {
		return color + text + colorReset
	}
	return text
}

// Print error message in user-friendly format
func printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorRed, "✗"), msg)
}

// Print success message
func printSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s %s\n", colorize(colorGreen, "✓"), msg)
	}
}

// Print info message
func printInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s\n", colorize(colorCyan, msg))
	}
}

// Print warning message
func printWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorYellow, "⚠"), msg)
}

// Print debug message
func printDebug(format string, args ...interface{}) {
	if debug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorGray, "[DEBUG]"), msg)
	}
}

// loadToolConfig reads the tool-level preferences, degrading to the
// defaults when the file is broken.
func loadToolConfig() *config.Config {
	path := config.GetConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		printWarning("Could not read tool config %s: %v (using defaults)", path, err)
		return config.DefaultConfig()
	}
	if cfg.NoColor {
		noColor = true
	}
	return cfg
}

// loadAnswers builds the answer store for a workflow, merging a prior
// configuration file when one was supplied. Without one the user may
// opt in to the shipped template as a starting point. A malformed
// file is reported and absorbed so the run degrades to fully
// interactive.
func loadAnswers(mode replay.Mode, configPath string, p *prompt.Prompter) (*replay.Store, configfile.Source, bool) {
	store := replay.NewStore(mode)
	src := configfile.ClassifySource(configPath, mode)
	if src.Path == "" {
		const q = "No config file provided. Do you want to use the template configuration? [y/N]:"
		answer, err := p.AskChoiceDefault(q, "n", "y", "yes", "n", "no")
		if err != nil || !prompt.IsYes(answer) {
			return store, src, false
		}
		tmplPath := configfile.TemplatePath(mode)
		if _, err := os.Stat(tmplPath); err != nil {
			printWarning("Template configuration %s not found; all questions will be asked.", tmplPath)
			return store, src, false
		}
		src = configfile.Source{Path: tmplPath, Template: true}
	}
	doc, err := configfile.Load(src.Path)
	if err != nil {
		printWarning("Configuration file %s could not be parsed: %v", src.Path, err)
		printWarning("Continuing without replay; all questions will be asked.")
		return store, src, false
	}
	if doc.Empty() {
		printWarning("Configuration file %s is empty; all questions will be asked.", src.Path)
		return store, src, false
	}
	store.Merge(doc.Sections)
	printInfo("Replaying recorded answers from %s", src.Path)
	return store, src, true
}

// confirmOverwrite asks before clobbering an existing file. The answer
// is never replayed from the file being asked about.
func confirmOverwrite(res *replay.Resolver, p *prompt.Prompter, path string) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}
	q := fmt.Sprintf("File %s already exists. Overwrite? [y/N]:", path)
	answer, err := res.ResolveOnce(q, p.YesNoFunc(q, "n"))
	if err != nil {
		return false, err
	}
	return prompt.IsYes(answer), nil
}

// confirmConfigTarget asks up front whether an existing configuration
// file at the derived save target may be replaced at the end of the
// run. Declining aborts the run before any output is written. The
// answer is never replayed from the file being asked about.
func confirmConfigTarget(res *replay.Resolver, p *prompt.Prompter, target string) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return true, nil
	}
	q := fmt.Sprintf("Configuration file %s already exists. Do you want to overwrite it? [y/N]:", target)
	answer, err := res.ResolveOnce(q, p.YesNoFunc(q, "n"))
	if err != nil {
		return false, err
	}
	return prompt.IsYes(answer), nil
}

// saveAnswers persists the recorded answers to the config target that
// was confirmed at the start of the run.
func saveAnswers(store *replay.Store, log *replay.Log, run *runinfo.Run, target string) {
	dateTime := time.Now().Format(time.RFC3339)
	if err := configfile.Save(store, log, run, dateTime, target); err != nil {
		printWarning("Could not save recorded answers to %s: %v", target, err)
		return
	}
	printSuccess("Recorded answers saved to %s", target)
}
