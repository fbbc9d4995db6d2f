// Package notebook models Jupyter notebook documents and transcodes them
// into the Fabric notebook source format.
package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Cell types as they appear in the .ipynb JSON.
const (
	CellTypeCode     = "code"
	CellTypeMarkdown = "markdown"
)

// Document is an ordered sequence of notebook cells. Cell order is the
// document's execution and presentation order and is preserved exactly
// through conversion.
type Document struct {
	Cells []Cell `json:"cells"`
}

// Cell is a single notebook cell. Source holds the cell's text split into
// lines, each line keeping its own trailing newline (the last line of a cell
// usually has none). Tags is nil when the cell carries no usable tag list.
type Cell struct {
	Type   string
	Source []string
	Tags   []string
}

// UnmarshalJSON reads a cell defensively: source may be a JSON array of
// strings or a single string, and a malformed metadata.tags container is
// treated the same as an absent one.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
		Metadata struct {
			Tags json.RawMessage `json:"tags"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Type = raw.CellType
	c.Source = parseSource(raw.Source)
	c.Tags = parseTags(raw.Metadata.Tags)
	return nil
}

// IsParameters reports whether the cell carries the "parameters" tag.
func (c Cell) IsParameters() bool {
	return slices.Contains(c.Tags, "parameters")
}

// IsEmpty reports whether the cell has no source lines at all.
func (c Cell) IsEmpty() bool {
	return len(c.Source) == 0
}

func parseSource(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return lines
	}

	// Some tools write source as one string rather than a line array.
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return nil
		}
		lines = strings.SplitAfter(text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		return lines
	}

	return nil
}

func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}

// Parse decodes a notebook document from .ipynb JSON bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing notebook: %w", err)
	}
	return &doc, nil
}

// Read loads and parses a notebook document from disk.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
