package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"timeline2pdf/internal/render/pdfcanvas"
	"timeline2pdf/internal/render/pngcanvas"
	"timeline2pdf/internal/render/svgcanvas"
	"timeline2pdf/internal/vector"
)

var formats = []string{"pdf", "png", "svg", "json"}

func knownFormat(format string) bool { return lo.Contains(formats, format) }

// getOutputFilename determines the output filename.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the CSV file by replacing
// the extension with the format's (e.g., "plan.csv" becomes "plan.pdf").
func getOutputFilename(csvFile, outputFile, format string) string {
	if outputFile != "" {
		return outputFile
	}

	base := filepath.Base(csvFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + format
}

// pageFilename numbers page i (0-based) of n. Single pages keep the name.
func pageFilename(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

// writeDocument writes doc in format and returns the files it created.
func writeDocument(doc vector.Document, format, path string, dpi float64) ([]string, error) {
	switch format {
	case "pdf":
		var buf bytes.Buffer
		if err := pdfcanvas.Render(doc, &buf); err != nil {
			return nil, err
		}
		return []string{path}, os.WriteFile(path, buf.Bytes(), 0644)

	case "json":
		var buf bytes.Buffer
		if err := doc.WriteJSON(&buf); err != nil {
			return nil, err
		}
		return []string{path}, os.WriteFile(path, buf.Bytes(), 0644)

	case "svg":
		pages, err := svgcanvas.Render(doc)
		if err != nil {
			return nil, err
		}
		var written []string
		for i, page := range pages {
			name := pageFilename(path, i, len(pages))
			if err := os.WriteFile(name, page, 0644); err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil

	case "png":
		pages, err := pngcanvas.Render(doc, dpi)
		if err != nil {
			return nil, err
		}
		var written []string
		for i, img := range pages {
			name := pageFilename(path, i, len(pages))
			var buf bytes.Buffer
			if err := pngcanvas.Encode(&buf, img); err != nil {
				return written, err
			}
			if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
