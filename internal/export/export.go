// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes an extracted Series as a YAML or JSON document.
// Implements: docs/ARCHITECTURE § Export.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/learning-curve/pkg/types"
)

// Document is the on-disk form of one extracted series.
type Document struct {
	Source      string       `json:"source" yaml:"source"`
	ExtractedAt time.Time    `json:"extracted_at" yaml:"extracted_at"`
	Count       int          `json:"count" yaml:"count"`
	Samples     types.Series `json:"samples" yaml:"samples"`
}

// NewDocument wraps series read from source.
func NewDocument(source string, series types.Series, at time.Time) Document {
	return Document{
		Source:      source,
		ExtractedAt: at.UTC(),
		Count:       series.Len(),
		Samples:     series,
	}
}

// DefaultOutput returns the file name used when no output path is given.
func DefaultOutput(format types.ExportFormat) string {
	switch format {
	case types.ExportJSON:
		return "learning-curve.json"
	case types.ExportSQLite:
		return "learning-curve.db"
	default:
		return "learning-curve.yaml"
	}
}

// FormatFor picks the document format from a file name: .json selects
// JSON, anything else YAML.
func FormatFor(path string) types.ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return types.ExportJSON
	}
	return types.ExportYAML
}

// Write encodes doc to w as YAML or JSON.
func Write(w io.Writer, doc Document, format types.ExportFormat) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case types.ExportYAML, "":
		data, err = yaml.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	case types.ExportJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported document format %q: use yaml or json", format)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes doc to path.
func WriteFile(path string, doc Document, format types.ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a document previously written by WriteFile.
func ReadFile(path string, format types.ExportFormat) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading export file: %w", err)
	}

	var doc Document
	switch format {
	case types.ExportYAML, "":
		err = yaml.Unmarshal(data, &doc)
	case types.ExportJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return Document{}, fmt.Errorf("unsupported document format %q: use yaml or json", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("parsing export file: %w", err)
	}
	return doc, nil
}
