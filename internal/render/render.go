// Package render formats solver results for people reading a terminal or
// for tools that prefer JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/knapsack/internal/solver"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for a format outside Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

type document struct {
	Value  int   `json:"value" yaml:"value"`
	Cost   int   `json:"cost" yaml:"cost"`
	Chosen []int `json:"chosen" yaml:"chosen,flow"`
}

// Write renders result to w in the requested format.
func Write(w io.Writer, format string, result solver.Result) error {
	doc := document{
		Value:  result.TotalValue,
		Cost:   result.TotalCost,
		Chosen: result.Chosen,
	}
	if doc.Chosen == nil {
		doc.Chosen = []int{}
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		_, err := fmt.Fprintf(w, "Total value: %d\nTotal cost: %d\nChosen: %v\n", doc.Value, doc.Cost, doc.Chosen)
		return err
	case FormatJSON:
		return json.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
