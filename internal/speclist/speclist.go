// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package speclist parses specification identifiers from the command line
// and from identifier files.
//
// The inline form is a comma-separated list of dotted 5-tuples:
//
//	22.278.15.4.0,22.280.15.3.0
//
// Identifier files hold one spec per line with a "v" marking the version:
//
//	22.278v15.4.0
package speclist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/specdl/pkg/types"
)

// ErrMalformed is returned when an identifier does not have five integer fields.
var ErrMalformed = errors.New("malformed spec identifier")

const (
	listSep    = ","
	fieldSep   = "."
	versionSep = "v"
	numFields  = 5
)

// ParseList parses the inline comma-separated form. Empty items are skipped.
func ParseList(s string) ([]types.SpecID, error) {
	var specs []types.SpecID
	for _, item := range strings.Split(s, listSep) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		spec, err := parseFields(item)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseLine parses one identifier in file form. The version marker is
// rewritten to a field separator before splitting, so both
// "22.278v15.4.0" and "22.278.15.4.0" are accepted.
func ParseLine(s string) (types.SpecID, error) {
	return parseFields(strings.ReplaceAll(strings.TrimSpace(s), versionSep, fieldSep))
}

// ParseFile reads identifiers from path. Files ending in .yaml or .yml are
// decoded as a specFile document; anything else is read line by line,
// skipping blank lines and lines starting with '#'.
func ParseFile(path string) ([]types.SpecID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	}

	var specs []types.SpecID
	sc := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		spec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		specs = append(specs, spec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading spec file %s: %w", path, err)
	}
	return specs, nil
}

// specFile is the YAML identifier file layout:
//
//	specs:
//	  - 22.278v15.4.0
//	  - 22.280v15.3.0
type specFile struct {
	Specs []string `yaml:"specs"`
}

func parseYAML(data []byte) ([]types.SpecID, error) {
	var sf specFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing spec file: %w", err)
	}
	specs := make([]types.SpecID, 0, len(sf.Specs))
	for i, entry := range sf.Specs {
		spec, err := ParseLine(entry)
		if err != nil {
			return nil, fmt.Errorf("specs[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseFields(s string) (types.SpecID, error) {
	parts := strings.Split(s, fieldSep)
	if len(parts) != numFields {
		return types.SpecID{}, fmt.Errorf("%w: %q has %d fields, want %d", ErrMalformed, s, len(parts), numFields)
	}
	var fields [numFields]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return types.SpecID{}, fmt.Errorf("%w: %q field %d is not a number", ErrMalformed, s, i+1)
		}
		fields[i] = n
	}
	return types.SpecID{
		Series:    fields[0],
		Number:    fields[1],
		Major:     fields[2],
		Tech:      fields[3],
		Editorial: fields[4],
	}, nil
}
