package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/polarmerge/polarmerge/pkg/errors"
)

// FromFile loads a layout from a YAML descriptor file. Fields omitted from
// the file keep the stock vendor layout's values, so a file only needs to
// declare what differs — typically the markers and prefixes. A missing name
// falls back to the file's base name.
//
//	name: synapt
//	raw_marker: "Raw abundance"
//	normalized_marker: "Normalized abundance"
//	raw_prefix: "Raw_"
//	normalized_prefix: "Norm_"
func FromFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.WrapIO("read", path, err)
	}

	l := Default()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.WrapParse("yaml", path, err)
	}

	if strings.TrimSpace(l.Name) == "" {
		base := filepath.Base(path)
		l.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
