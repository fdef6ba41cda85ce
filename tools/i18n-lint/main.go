// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-lint checks the locale files against the source tree. It reports
// keys passed to i18n.T that the primary locale lacks, keys the primary
// locale defines but nothing references, and keys missing from the other
// locales. Run it from the repository root.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	// i18n.T("some.key")
	callRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// key-shaped literals, e.g. ids picked in a switch before calling T
	literalRe = regexp.MustCompile(`"([a-z]+\.[a-z_]+)"`)
)

// report is the outcome of one lint run.
type report struct {
	Undefined map[string][]string // key -> locale files lacking it
	Orphaned  []string
}

func (r report) failed() bool { return len(r.Undefined) > 0 }

func main() {
	r, err := lint(projectRoot, localesDir, primaryLocale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-lint: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, dir, primary string) (report, error) {
	calls, literals, err := findUsedKeys(root)
	if err != nil {
		return report{}, err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return report{}, err
	}
	sort.Strings(files)

	primaryKeys, err := loadKeysFromLocale(filepath.Join(dir, primary))
	if err != nil {
		return report{}, fmt.Errorf("load primary locale %s: %w", primary, err)
	}

	r := report{Undefined: map[string][]string{}}
	for key := range calls {
		if _, ok := primaryKeys[key]; !ok {
			r.Undefined[key] = append(r.Undefined[key], primary)
		}
	}
	for key := range primaryKeys {
		_, called := calls[key]
		_, named := literals[key]
		if !called && !named {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	for _, f := range files {
		name := filepath.Base(f)
		if name == primary {
			continue
		}
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return report{}, fmt.Errorf("load locale %s: %w", name, err)
		}
		for key := range primaryKeys {
			if _, ok := keys[key]; !ok {
				r.Undefined[key] = append(r.Undefined[key], name)
			}
		}
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	keys := make([]string, 0, len(r.Undefined))
	for k := range r.Undefined {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "missing: %s (%s)\n", k, strings.Join(r.Undefined[k], ", "))
	}
	for _, k := range r.Orphaned {
		fmt.Fprintf(w, "orphaned: %s\n", k)
	}
	if len(keys) == 0 && len(r.Orphaned) == 0 {
		fmt.Fprintln(w, "all translation files are consistent")
	}
}

// findUsedKeys scans non-test .go files outside tools/ and returns the keys
// passed to i18n.T and every key-shaped string literal.
func findUsedKeys(root string) (calls, literals map[string]struct{}, err error) {
	calls = make(map[string]struct{})
	literals = make(map[string]struct{})

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range callRe.FindAllStringSubmatch(string(content), -1) {
			calls[m[1]] = struct{}{}
		}
		for _, m := range literalRe.FindAllStringSubmatch(string(content), -1) {
			literals[m[1]] = struct{}{}
		}
		return nil
	})
	return calls, literals, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML turns nested maps into dot-separated keys. Flat files with
// dotted keys come out unchanged.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
