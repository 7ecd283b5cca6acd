// Package manifest parses the dependency manifest consumed by the
// install_deps stage: one "name==version" pair per line, with blank lines
// and '#' comments ignored.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Package is a single resolved dependency declaration.
type Package struct {
	Name    string
	Version string
}

// Spec renders the package back into its manifest form, which is also the
// argument form package managers accept.
func (p Package) Spec() string {
	return p.Name + "==" + p.Version
}

// Parse reads a manifest from r and returns its packages in declaration
// order. A partial dependency set is never acceptable, so any malformed
// line fails the whole parse.
func Parse(r io.Reader) ([]Package, error) {
	var packages []Package
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, version, ok := strings.Cut(line, "==")
		if !ok {
			return nil, fmt.Errorf("manifest line %d: %q is not a name==version pair", lineNo, line)
		}
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" {
			return nil, fmt.Errorf("manifest line %d: empty package name", lineNo)
		}
		if version == "" {
			return nil, fmt.Errorf("manifest line %d: package %q has an empty version", lineNo, name)
		}
		if firstLine, dup := seen[name]; dup {
			return nil, fmt.Errorf("manifest line %d: package %q already declared on line %d", lineNo, name, firstLine)
		}

		seen[name] = lineNo
		packages = append(packages, Package{Name: name, Version: version})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return packages, nil
}

// ParseFile parses the manifest at path.
func ParseFile(path string) ([]Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	packages, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return packages, nil
}
