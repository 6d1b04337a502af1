// Package configfile owns the on-disk contract of the recorded-answer
// configuration: loading the YAML document back into the replay
// structures, writing the commented, sectioned format, and the
// template-vs-user-config bootstrap rules.
package configfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oceanomics/faire2ncbi/internal/errors"
	"github.com/oceanomics/faire2ncbi/internal/replay"
	"github.com/oceanomics/faire2ncbi/internal/runinfo"
)

// Document is the parsed form of a configuration file: run metadata
// plus the category sections in file order.
type Document struct {
	Command        string
	DateTime       string
	Sections       []replay.LoadedSection
	GeneratedFiles []runinfo.GeneratedFile
}

// Empty reports whether the document carries no recorded state.
func (d *Document) Empty() bool {
	return d.Command == "" && d.DateTime == "" &&
		len(d.Sections) == 0 && len(d.GeneratedFiles) == 0
}

// Load reads a configuration file. A missing file is not an error and
// yields an empty document; a malformed file yields an empty document
// plus an error the caller reports and absorbs, so a broken config
// degrades to a fully interactive run.
func Load(path string) (*Document, error) {
	const op errors.Op = "configfile.Load"
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Document{}, nil
	}
	if err != nil {
		return &Document{}, errors.E(op, errors.KindIO, err)
	}
	doc, err := parse(data)
	if err != nil {
		return &Document{}, errors.E(op, errors.KindParse, err)
	}
	return doc, nil
}

// parse walks the YAML node tree directly so the on-disk key order of
// every section and map entry survives into the document.
func parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	doc := &Document{}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return doc, fmt.Errorf("top level is not a mapping")
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i]
		val := top.Content[i+1]
		switch key.Value {
		case "command":
			doc.Command = val.Value
		case "date_time":
			doc.DateTime = val.Value
		case "generated_files":
			if err := val.Decode(&doc.GeneratedFiles); err != nil {
				return nil, err
			}
		case "qa_pairs":
			// Older files carried the raw log; the structured
			// sections are authoritative, so it is skipped.
		default:
			if val.Kind != yaml.MappingNode {
				continue
			}
			doc.Sections = append(doc.Sections, parseSection(key.Value, val))
		}
	}
	return doc, nil
}

func parseSection(name string, node *yaml.Node) replay.LoadedSection {
	sec := replay.LoadedSection{Category: replay.Category(name)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		entry := replay.LoadedEntry{Text: key.Value}
		switch val.Kind {
		case yaml.MappingNode:
			entry.Mapped = true
			for j := 0; j+1 < len(val.Content); j += 2 {
				entry.Pairs = append(entry.Pairs, replay.QA{
					Question: val.Content[j].Value,
					Answer:   val.Content[j+1].Value,
				})
			}
		default:
			entry.Scalar = val.Value
		}
		sec.Entries = append(sec.Entries, entry)
	}
	return sec
}
