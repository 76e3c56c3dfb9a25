package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/reusecalc/internal/engine"
	"github.com/rshade/reusecalc/internal/logging"
	"github.com/rshade/reusecalc/internal/reference"
)

// Format is a document encoding.
type Format string

// Supported document formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes a document. Unknown fields are rejected so that misspelled
// keys do not silently become zero values.
func Parse(ctx context.Context, data []byte, format Format) (*Document, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "parse").
		Str("format", string(format)).
		Int("data_size_bytes", len(data)).
		Msg("parsing project document")

	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing YAML document: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing JSON document: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if len(doc.ProjectDocuments()) == 0 {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project document: %w", err)
	}
	doc, err := Parse(ctx, data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadProjects loads every file and resolves all of their projects, in file
// order.
func LoadProjects(ctx context.Context, tables *reference.Tables, paths ...string) ([]engine.ProjectInput, error) {
	log := logging.FromContext(ctx)

	var projects []engine.ProjectInput
	for _, path := range paths {
		doc, err := LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		resolved, err := Resolve(tables, doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Debug().
			Ctx(ctx).
			Str("component", "ingest").
			Str("path", path).
			Int("project_count", len(resolved)).
			Msg("projects loaded")
		projects = append(projects, resolved...)
	}
	return projects, nil
}

// ProjectDocuments returns the listed projects, or the top-level project
// when the document has no list.
func (d *Document) ProjectDocuments() []ProjectDocument {
	if len(d.Projects) > 0 {
		return d.Projects
	}
	if d.ProjectDocument.isZero() {
		return nil
	}
	return []ProjectDocument{d.ProjectDocument}
}

func (p ProjectDocument) isZero() bool {
	return p.ID == "" && p.Name == "" && p.State == "" && p.Dishwasher == nil &&
		len(p.SingleUseItems) == 0 && len(p.ReusableItems) == 0 && len(p.AdditionalCosts) == 0 &&
		len(p.WasteHauling) == 0 && len(p.NewWasteHauling) == 0
}
