package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOMLFile strictly decodes a TOML config file. TOML sources carry the
// file but no line, since go-toml does not expose value positions.
func decodeTOMLFile(file string, data []byte) (RawConfig, map[string]Source, error) {
	var raw RawConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return RawConfig{}, nil, tomlError(file, err)
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return RawConfig{}, nil, tomlError(file, err)
	}
	sources := make(map[string]Source)
	collectTOMLSources(tree, file, "", sources)
	return raw, sources, nil
}

// tomlError adds file:line:col context to go-toml errors.
func tomlError(file string, err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		row, col := first.Position()
		return fmt.Errorf("%s:%d:%d: unknown field %q", file, row, col, strings.Join(first.Key(), "."))
	}
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return fmt.Errorf("%s:%d:%d: %s", file, row, col, decErr.Error())
	}
	return fmt.Errorf("%s: failed to parse toml: %w", file, err)
}

func collectTOMLSources(tree map[string]any, file, prefix string, out map[string]Source) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		out[path] = Source{Kind: SourceFile, File: file}
		if sub, ok := tree[key].(map[string]any); ok {
			collectTOMLSources(sub, file, path, out)
		}
	}
}
