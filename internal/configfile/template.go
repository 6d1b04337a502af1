package configfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oceanomics/faire2ncbi/internal/replay"
)

// Template filenames shipped alongside the binary.
const (
	BioSampleTemplateName = "BioSample_Metadata_Config_Template.yaml"
	SRATemplateName       = "SRA_Metadata_Config_Template.yaml"
)

// TemplateName returns the shipped template filename for a mode.
func TemplateName(mode replay.Mode) string {
	if mode == replay.ModeSRA {
		return SRATemplateName
	}
	return BioSampleTemplateName
}

// TemplatePath resolves the shipped template location: the directory
// named by FAIRE2NCBI_TEMPLATE_DIR when set, otherwise next to the
// executable.
func TemplatePath(mode replay.Mode) string {
	if dir := os.Getenv("FAIRE2NCBI_TEMPLATE_DIR"); dir != "" {
		return filepath.Join(dir, TemplateName(mode))
	}
	exe, err := os.Executable()
	if err != nil {
		return TemplateName(mode)
	}
	return filepath.Join(filepath.Dir(exe), TemplateName(mode))
}

// Source identifies where recorded answers were loaded from. The
// shipped template is a read-only starting point; a user config is
// both the replay source and a candidate write target.
type Source struct {
	Path     string
	Template bool
}

// ClassifySource decides whether a user-supplied config path is the
// shipped template, by absolute path equality or by filename
// equality. Either match makes the source read-only.
func ClassifySource(userPath string, mode replay.Mode) Source {
	if userPath == "" {
		return Source{}
	}
	tmplPath := TemplatePath(mode)
	absUser, errU := filepath.Abs(userPath)
	absTmpl, errT := filepath.Abs(tmplPath)
	if errU == nil && errT == nil && absUser == absTmpl {
		return Source{Path: userPath, Template: true}
	}
	if filepath.Base(userPath) == TemplateName(mode) {
		return Source{Path: userPath, Template: true}
	}
	return Source{Path: userPath}
}

// DerivedConfigPath maps an output data file to its companion config
// path: the output base name plus "_config.yaml". The end-of-run save
// always goes to this path; the replay source, template or user
// config, is never written back in place.
func DerivedConfigPath(outputPath string) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return base + "_config.yaml"
}
