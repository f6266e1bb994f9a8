package codebook

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JPK85/patentpack/pkg/errors"
)

// Snapshot is a human-inspectable rendering of one Get call's result,
// exported to YAML for operators auditing what a codebook level currently
// holds without having to read the raw JSON cache file.
type Snapshot struct {
	Level  Level    `yaml:"level"`
	Source string   `yaml:"source"`
	Count  int      `yaml:"count"`
	Codes  []string `yaml:"codes"`
}

// ExportSnapshotYAML writes a Snapshot of meta/codes to path in YAML,
// overwriting any existing file. Unlike the JSON cache file (an internal,
// level-keyed store consulted by Get), this is a one-off export meant to be
// read by a person, not round-tripped by the Codebook itself.
func ExportSnapshotYAML(path string, codes []string, meta Meta) error {
	snap := Snapshot{Level: meta.Level, Source: meta.Source, Count: meta.Count, Codes: codes}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "codebook: failed to marshal snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "codebook: failed to write snapshot")
	}
	return nil
}
