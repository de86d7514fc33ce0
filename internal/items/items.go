// Package items reads knapsack items from files. The plain format holds one
// item per line as three whitespace-separated integers: index, cost, value.
// Files ending in .yaml or .yml hold a sequence of {index, cost, value} maps.
package items

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/knapsack/internal/solver"
)

const (
	fieldsPerRecord = 3
	maxLineBytes    = 1 << 20
)

// Load reads items from path, choosing the format from the file extension.
func Load(path string) ([]solver.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return Parse(f)
	}
}

// Parse reads whitespace-separated `index cost value` records. Blank lines
// are skipped.
func Parse(r io.Reader) ([]solver.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	var out []solver.Item
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != fieldsPerRecord {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", solver.ErrInvalidInput, line, fieldsPerRecord, len(fields))
		}

		var values [fieldsPerRecord]int
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid integer %q", solver.ErrInvalidInput, line, field)
			}
			values[i] = v
		}

		item := solver.Item{Index: values[0], Cost: values[1], Value: values[2]}
		if item.Cost < 0 {
			return nil, fmt.Errorf("%w: line %d: negative cost %d", solver.ErrInvalidInput, line, item.Cost)
		}
		out = append(out, item)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: longer than %d bytes", solver.ErrInvalidInput, line+1, maxLineBytes)
		}
		return nil, fmt.Errorf("read items: %w", err)
	}
	return out, nil
}

type yamlItem struct {
	Index *int `yaml:"index"`
	Cost  *int `yaml:"cost"`
	Value *int `yaml:"value"`
}

// ParseYAML reads a YAML sequence of items. Every field is required.
func ParseYAML(r io.Reader) ([]solver.Item, error) {
	var raw []yamlItem
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: parse YAML: %v", solver.ErrInvalidInput, err)
	}

	out := make([]solver.Item, 0, len(raw))
	for i, entry := range raw {
		if entry.Index == nil || entry.Cost == nil || entry.Value == nil {
			return nil, fmt.Errorf("%w: entry %d: index, cost and value are required", solver.ErrInvalidInput, i)
		}
		if *entry.Cost < 0 {
			return nil, fmt.Errorf("%w: entry %d: negative cost %d", solver.ErrInvalidInput, i, *entry.Cost)
		}
		out = append(out, solver.Item{Index: *entry.Index, Cost: *entry.Cost, Value: *entry.Value})
	}
	return out, nil
}
