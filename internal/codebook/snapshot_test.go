package codebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportSnapshotYAML_WritesReadableSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "section.yaml")

	meta := Meta{Source: "static", Level: LevelSection, Count: 2}
	err := ExportSnapshotYAML(path, []string{"A", "B"}, meta)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	assert.Equal(t, LevelSection, snap.Level)
	assert.Equal(t, "static", snap.Source)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, []string{"A", "B"}, snap.Codes)
}

func TestExportSnapshotYAML_OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "class.yaml")

	require.NoError(t, ExportSnapshotYAML(path, []string{"H01"}, Meta{Level: LevelClass, Source: "pv", Count: 1}))
	require.NoError(t, ExportSnapshotYAML(path, []string{"H01", "H04"}, Meta{Level: LevelClass, Source: "cache", Count: 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	assert.Equal(t, []string{"H01", "H04"}, snap.Codes)
	assert.Equal(t, "cache", snap.Source)
}
