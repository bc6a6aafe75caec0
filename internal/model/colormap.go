package model

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ColorRule maps a color-name prefix to a base-color label.
type ColorRule struct {
	Prefix string
	Base   string
}

// ColorMapping is an ordered list of prefix rules. Lookup is a linear scan
// and the first matching prefix wins, so file line order is load-bearing.
type ColorMapping struct {
	rules []ColorRule
}

// Lookup returns the base color for a vendor color name, or "" when no
// prefix matches. Matching is case-insensitive.
func (m *ColorMapping) Lookup(colorName string) string {
	name := strings.ToLower(strings.TrimSpace(colorName))
	for _, rule := range m.rules {
		if strings.HasPrefix(name, strings.ToLower(rule.Prefix)) {
			return rule.Base
		}
	}
	return ""
}

// Len returns the number of loaded rules.
func (m *ColorMapping) Len() int {
	return len(m.rules)
}

// LoadColorMapping reads "prefix;base" lines into an ordered mapping.
// Malformed lines are skipped with a warning, never fatal. Blank lines and
// lines starting with '#' are ignored.
func LoadColorMapping(r io.Reader) (*ColorMapping, error) {
	mapping := &ColorMapping{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		prefix, base, ok := strings.Cut(line, ";")
		prefix = strings.TrimSpace(prefix)
		base = strings.TrimSpace(base)
		if !ok || prefix == "" || base == "" {
			slog.Warn("Skipping malformed color mapping line",
				"line", lineNo,
				"content", line)
			continue
		}

		mapping.rules = append(mapping.rules, ColorRule{Prefix: prefix, Base: base})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read color mapping: %w", err)
	}

	return mapping, nil
}
