package lexicon

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Extension is the on-disk format for site-specific vocabulary:
//
//	misspellings:
//	  hydrafacal: hydrafacial
//	synonyms:
//	  hydrafacial: [facials]
//	phrases:
//	  glow facial: [hydrafacial]
type Extension struct {
	Misspellings map[string]string   `yaml:"misspellings"`
	Synonyms     map[string][]string `yaml:"synonyms"`
	Phrases      map[string][]string `yaml:"phrases"`
}

// ParseExtension decodes a YAML extension document.
func ParseExtension(data []byte) (Extension, error) {
	var ext Extension
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return Extension{}, fmt.Errorf("parse lexicon extension: %w", err)
	}
	return ext, nil
}

// LoadFile reads an extension file and returns the default lexicon extended with it.
// An empty path returns the default lexicon.
func LoadFile(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read lexicon extension %s: %w", path, err)
	}
	ext, err := ParseExtension(data)
	if err != nil {
		return nil, err
	}
	return Default().Extend(ext), nil
}
