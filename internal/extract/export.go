// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/util"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportBaseName is the file name used for downloads, without extension.
const ExportBaseName = "form_data"

// orderedKeys returns schema keys first, then any extra keys sorted.
func (f Form) orderedKeys() []string {
	keys := make([]string, 0, len(f))
	known := make(map[string]bool, len(Fields))
	for _, fd := range Fields {
		known[fd.Key] = true
		if _, ok := f[fd.Key]; ok {
			keys = append(keys, fd.Key)
		}
	}
	var extra []string
	for k := range f {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// MarshalJSON writes the form as an object in schema order, indented with
// two spaces.
func (f Form) MarshalJSON() ([]byte, error) {
	keys := f.orderedKeys()
	if len(keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(f[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(vb)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// MarshalYAML keeps schema order in YAML output.
func (f Form) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range f.orderedKeys() {
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f[k]}
		if strings.Contains(f[k], "\n") {
			val.Style = yaml.LiteralStyle
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			val,
		)
	}
	return node, nil
}

// Marshal encodes the form in the given format.
func Marshal(f Form, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		// json.Marshal would compact the output.
		return f.MarshalJSON()
	case FormatYAML, "yml":
		return yaml.Marshal(f)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WriteFile writes the form to path atomically.
func WriteFile(f Form, path string) error {
	data, err := Marshal(f, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("export form: %w", err)
	}
	return nil
}

// Export writes form_data.<ext> into dir and returns the path.
func Export(f Form, format, dir string) (string, error) {
	ext := ".json"
	if format == FormatYAML {
		ext = ".yaml"
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportBaseName+ext)
	if err := WriteFile(f, path); err != nil {
		return "", err
	}
	return path, nil
}

// =============================================================================
// EXTRACTED DATA VIEW
// =============================================================================

// Entry is one top-level key of extracted data, ready for display.
type Entry struct {
	Key   string
	Label string
	Value string
}

// Entries lists the extracted data keys in sorted order. Scalars are shown
// as text, nested values as compact JSON, and missing values as "N/A".
func Entries(d *api.ExtractedData) []Entry {
	if d == nil || len(d.Raw) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.Raw))
	for k := range d.Raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{
			Key:   k,
			Label: strings.ReplaceAll(k, "_", " "),
			Value: display(d.Raw[k]),
		})
	}
	return out
}

func display(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		if t == "" {
			return "N/A"
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "N/A"
		}
		return string(b)
	}
}

// PrettyJSON indents extracted data for the JSON view and clipboard.
func PrettyJSON(d *api.ExtractedData) (string, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
