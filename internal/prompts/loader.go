// Package prompts serves the LLM prompt texts. Each JSON file embedded here
// maps prompt keys to template strings with {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// parsed files, keyed by filename. Embedded content never changes, so each
// file is decoded at most once per process.
var fileCache sync.Map // string -> map[string]string

var placeholderPattern = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// Get returns the prompt stored under key in the named file. The filename
// carries no path, e.g. "parse_offer.json".
func Get(filename, key string) (string, error) {
	entries, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the binary cannot run without; it panics on a
// missing file or key.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic("prompts: " + err.Error())
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data in a
// single pass. Placeholders without a matching key are left as written so a
// missing value is visible in the rendered prompt.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[3 : len(match)-2]
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}

// List returns the prompt keys of a file in sorted order.
func List(filename string) ([]string, error) {
	entries, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(entries)), nil
}

// ClearCache drops all cached files. Only tests need this.
func ClearCache() {
	fileCache.Range(func(key, _ any) bool {
		fileCache.Delete(key)
		return true
	})
}

func loadFile(filename string) (map[string]string, error) {
	if cached, ok := fileCache.Load(filename); ok {
		return cached.(map[string]string), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := fileCache.LoadOrStore(filename, entries)
	return actual.(map[string]string), nil
}
