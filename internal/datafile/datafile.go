// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package datafile writes the collected publication list as a site data
// file. The JSON shape (source / last_updated / publications) is what the
// Jekyll templates read, so it is fixed.
package datafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

const dateFmt = "2006-01-02"

// Document is the on-disk representation of one sync run.
type Document struct {
	// Source is the profile URL the publications came from.
	Source string `json:"source" yaml:"source"`

	// LastUpdated is the run date as an ISO calendar date, no time component.
	LastUpdated string `json:"last_updated" yaml:"last_updated"`

	// Publications is sorted by year descending, first-seen order within a year.
	Publications []types.Publication `json:"publications" yaml:"publications"`
}

// New finalizes a collection run into a Document: publications are sorted
// by year descending (stable, so first-seen order survives within a year)
// and stamped with the run date. The input slice is sorted in place and
// the Document is never mutated afterwards.
func New(source string, publications []types.Publication, today time.Time) Document {
	sort.SliceStable(publications, func(i, j int) bool {
		return publications[i].Year > publications[j].Year
	})
	return Document{
		Source:       source,
		LastUpdated:  today.Format(dateFmt),
		Publications: publications,
	}
}

// Write serializes the document to path in the given format. The parent
// directory is created if needed, and the file lands via a temp file plus
// rename so a failed run never leaves a truncated data file behind.
func Write(path string, doc Document, format types.OutputFormat) error {
	data, err := marshal(doc, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".scholar-sync-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing data file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Read loads a previously written JSON document, for round-trip checks and
// archive backfills.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing data file %s: %w", path, err)
	}
	return doc, nil
}

func marshal(doc Document, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.OutputJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling data file: %w", err)
		}
		return append(data, '\n'), nil
	case types.OutputYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling data file: %w", err)
		}
		return data, nil
	case types.OutputCSL:
		var buf bytes.Buffer
		if err := FormatCSL(doc.Publications, &buf); err != nil {
			return nil, fmt.Errorf("marshaling CSL: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json, yaml, or csl", format)
	}
}
