// Package runinfo records the metadata of a conversion run: the
// invoking command line, a run identifier, and the files the run
// produced.
package runinfo

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneratedFile describes one output file written during a run.
type GeneratedFile struct {
	FilePath    string `yaml:"file_path"`
	Description string `yaml:"description"`
	Timestamp   string `yaml:"timestamp"`
}

// Run holds the metadata persisted alongside the recorded answers.
type Run struct {
	ID             string
	Command        string
	Started        time.Time
	GeneratedFiles []GeneratedFile

	now func() time.Time
}

// New captures the current process invocation.
func New() *Run {
	return &Run{
		ID:      uuid.NewString(),
		Command: strings.Join(os.Args, " "),
		Started: time.Now(),
		now:     time.Now,
	}
}

// AddGeneratedFile records an output file. Paths already recorded are
// ignored so repeated saves stay deduplicated.
func (r *Run) AddGeneratedFile(path, description string) {
	for _, gf := range r.GeneratedFiles {
		if gf.FilePath == path {
			return
		}
	}
	if r.now == nil {
		r.now = time.Now
	}
	r.GeneratedFiles = append(r.GeneratedFiles, GeneratedFile{
		FilePath:    path,
		Description: description,
		Timestamp:   r.now().Format(time.RFC3339),
	})
}
