package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline2pdf/internal/gantt"
	"timeline2pdf/internal/lanes"
	"timeline2pdf/internal/vector"
)

func TestGetOutputFilename(t *testing.T) {
	assert.Equal(t, "out.pdf", getOutputFilename("data/plan.csv", "out.pdf", "pdf"))
	assert.Equal(t, "plan.svg", getOutputFilename("data/plan.csv", "", "svg"))
	assert.Equal(t, "plan.json", getOutputFilename("plan", "", "json"))
}

func TestPageFilename(t *testing.T) {
	assert.Equal(t, "plan.png", pageFilename("plan.png", 0, 1))
	assert.Equal(t, "plan-1.png", pageFilename("plan.png", 0, 3))
	assert.Equal(t, "dir/plan-3.svg", pageFilename("dir/plan.svg", 2, 3))
}

func TestKnownFormat(t *testing.T) {
	for _, f := range []string{"pdf", "png", "svg", "json"} {
		assert.True(t, knownFormat(f), f)
	}
	assert.False(t, knownFormat("docx"))
}

func testDocument(t *testing.T, hpages int) vector.Document {
	t.Helper()
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	groups := []lanes.Group{{
		Label: []string{"Build"},
		Intervals: []lanes.Interval{
			{Label: []string{"compile"}, Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour), Color: "blue"},
		},
	}}
	cfg := gantt.DefaultConfig()
	cfg.HPages = hpages
	cfg.Location = time.UTC
	doc, err := gantt.Generate(groups, cfg)
	require.NoError(t, err)
	return doc
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "plan.json")
		written, err := writeDocument(testDocument(t, 1), "json", path, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, written)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Contains(t, decoded, "pages")
	})

	t.Run("svg per page", func(t *testing.T) {
		path := filepath.Join(dir, "plan.svg")
		written, err := writeDocument(testDocument(t, 2), "svg", path, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "plan-1.svg"),
			filepath.Join(dir, "plan-2.svg"),
		}, written)
		for _, name := range written {
			assert.FileExists(t, name)
		}
	})

	t.Run("pdf", func(t *testing.T) {
		path := filepath.Join(dir, "plan.pdf")
		_, err := writeDocument(testDocument(t, 2), "pdf", path, 0)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(data[:5]))
	})

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "plan.png")
		written, err := writeDocument(testDocument(t, 1), "png", path, 30)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, written)
		assert.FileExists(t, path)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := writeDocument(testDocument(t, 1), "docx", filepath.Join(dir, "x"), 0)
		assert.Error(t, err)
	})
}
