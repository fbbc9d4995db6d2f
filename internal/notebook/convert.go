package notebook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CellClass is the classification of a code cell, derived from its first
// source line only. Later lines are never inspected.
type CellClass int

const (
	// ClassPlain is ordinary code with no leading magic directive.
	ClassPlain CellClass = iota
	// ClassQueryMagic is a cell starting with the %%sql directive.
	ClassQueryMagic
	// ClassConfigureMagic is a cell starting with the %%configure directive.
	ClassConfigureMagic
	// ClassGenericMagic is any other cell starting with % or %%.
	ClassGenericMagic
)

// Classify determines a code cell's class from its first source line.
// Comparison is against literal prefixes, case-sensitive.
func Classify(firstLine string) CellClass {
	switch {
	case strings.HasPrefix(firstLine, "%%sql"):
		return ClassQueryMagic
	case strings.HasPrefix(firstLine, "%%configure"):
		return ClassConfigureMagic
	case strings.HasPrefix(firstLine, "%"):
		return ClassGenericMagic
	default:
		return ClassPlain
	}
}

// Options controls the document header of a conversion. The lakehouse
// dependency block is embedded only when LakehouseID, LakehouseName, and
// WorkspaceID are all set; a partial set emits no block at all.
type Options struct {
	WorkspaceID   string
	LakehouseID   string
	LakehouseName string
}

func (o Options) includeLakehouse() bool {
	return o.WorkspaceID != "" && o.LakehouseID != "" && o.LakehouseName != ""
}

const kernelName = "synapse_pyspark"

// Convert transcodes a notebook document into Fabric notebook source text.
// The transformation is pure: identical inputs always produce byte-identical
// output, and the result ends with exactly one trailing newline.
func Convert(doc *Document, opts Options) string {
	var b strings.Builder

	writeHeader(&b, opts)

	for _, cell := range doc.Cells {
		if cell.IsEmpty() {
			continue
		}
		switch cell.Type {
		case CellTypeCode:
			writeCodeCell(&b, cell)
		case CellTypeMarkdown:
			writeMarkdownCell(&b, cell)
		}
	}

	return strings.TrimRight(b.String(), " \t\r\n") + "\n"
}

// ConvertFile reads an .ipynb file, converts it, and writes the result to
// outputPath when one is given. Returns the converted text either way.
func ConvertFile(inputPath, outputPath string, opts Options) (string, error) {
	doc, err := Read(inputPath)
	if err != nil {
		return "", err
	}

	result := Convert(doc, opts)

	if outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, []byte(result), 0o644); err != nil {
			return "", fmt.Errorf("writing converted notebook: %w", err)
		}
	}

	return result, nil
}

func writeHeader(b *strings.Builder, opts Options) {
	b.WriteString("# Fabric notebook source\n\n")
	b.WriteString("# METADATA ********************\n\n")
	b.WriteString("# META {\n")
	b.WriteString("# META   \"kernel_info\": {\n")
	fmt.Fprintf(b, "# META     \"name\": %q\n", kernelName)
	if opts.includeLakehouse() {
		b.WriteString("# META   },\n")
		b.WriteString("# META   \"dependencies\": {\n")
		b.WriteString("# META     \"lakehouse\": {\n")
		fmt.Fprintf(b, "# META       \"default_lakehouse\": %q,\n", opts.LakehouseID)
		fmt.Fprintf(b, "# META       \"default_lakehouse_name\": %q,\n", opts.LakehouseName)
		fmt.Fprintf(b, "# META       \"default_lakehouse_workspace_id\": %q\n", opts.WorkspaceID)
		b.WriteString("# META     }\n")
	}
	b.WriteString("# META   }\n")
	b.WriteString("# META }\n\n")
}

func writeCodeCell(b *strings.Builder, cell Cell) {
	if cell.IsParameters() {
		b.WriteString("# PARAMETERS CELL ********************\n\n")
	} else {
		b.WriteString("# CELL ********************\n\n")
	}

	class := Classify(cell.Source[0])

	var body strings.Builder
	for _, line := range cell.Source {
		if class == ClassPlain {
			body.WriteString(line)
		} else {
			body.WriteString("# MAGIC " + line)
		}
	}
	writeBody(b, body.String())

	switch class {
	case ClassQueryMagic:
		writeCellMeta(b, "sparksql")
	case ClassConfigureMagic, ClassPlain:
		writeCellMeta(b, "python")
	case ClassGenericMagic:
		// generic magics get no per-cell metadata footer
	}
}

func writeMarkdownCell(b *strings.Builder, cell Cell) {
	b.WriteString("# MARKDOWN ********************\n\n")

	var body strings.Builder
	for _, line := range cell.Source {
		body.WriteString("# " + line)
	}
	writeBody(b, body.String())
}

// writeBody emits a cell body followed by exactly one blank line, however
// many trailing newlines the source carried.
func writeBody(b *strings.Builder, body string) {
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n\n")
}

func writeCellMeta(b *strings.Builder, language string) {
	b.WriteString("# METADATA ********************\n\n")
	b.WriteString("# META {\n")
	fmt.Fprintf(b, "# META   \"language\": %q,\n", language)
	fmt.Fprintf(b, "# META   \"language_group\": %q\n", kernelName)
	b.WriteString("# META }\n\n")
}
