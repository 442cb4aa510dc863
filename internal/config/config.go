// Package config loads an optional bfgraph config file. Values in the file
// are defaults for command-line flags; a flag given explicitly always wins.
//
// The file is YAML unless its extension is .json or .jsonc, in which case it
// is JSON with comments and trailing commas allowed. Unknown keys are
// rejected in both forms. ${VAR} references in path values are expanded
// from the environment.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// File mirrors the config file. Nil fields were not set.
type File struct {
	KmerSize      *int     `yaml:"kmer_size" json:"kmer_size"`
	Filter        *string  `yaml:"filter" json:"filter"`
	Output        *string  `yaml:"output" json:"output"`
	Format        *string  `yaml:"format" json:"format"`
	Graph         *string  `yaml:"graph" json:"graph"`
	OnInvalid     *string  `yaml:"on_invalid" json:"on_invalid"`
	Verbose       *bool    `yaml:"verbose" json:"verbose"`
	ExpectedKmers *uint    `yaml:"expected_kmers" json:"expected_kmers"`
	FPRate        *float64 `yaml:"fp_rate" json:"fp_rate"`
	MinCount      *int     `yaml:"min_count" json:"min_count"`
}

// LoadFile reads and parses the config file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		f, err = ParseJSONC(data)
	default:
		f, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.expandPaths()
	return f, nil
}

// ParseYAML decodes a YAML config. An empty document is an empty config.
func ParseYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f, nil
}

// ParseJSONC strips comments and trailing commas, then decodes JSON.
func ParseJSONC(data []byte) (*File, error) {
	var f File
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return &f, nil
	}
	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f, nil
}

func (f *File) expandPaths() {
	for _, p := range []*string{f.Filter, f.Output, f.Graph} {
		if p != nil {
			*p = os.ExpandEnv(*p)
		}
	}
}
