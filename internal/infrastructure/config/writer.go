package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// WriteConfigOrdered writes the configuration to disk with consistent ordering.
// - Struct fields are written in definition order (go-toml v2 behavior)
// - Tables are grouped by their root key and the groups sorted alphabetically
// - Arrays of tables such as [[keymaps]] keep their element order
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, []byte(sortTOMLSections(buf.String())), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var sectionRegex = regexp.MustCompile(`^\s*(\[\[?)([^\]]+)\]\]?\s*$`)

// sortTOMLSections reorders the tables of an encoded document.
func sortTOMLSections(content string) string {
	type section struct {
		header string
		lines  []string
	}
	type group struct {
		root     string
		array    bool
		sections []section
	}

	var preamble []string
	var groups []*group
	byRoot := make(map[string]*group)
	var current *section

	for _, line := range strings.Split(content, "\n") {
		match := sectionRegex.FindStringSubmatch(line)
		if match == nil {
			if current != nil {
				current.lines = append(current.lines, line)
			} else {
				preamble = append(preamble, line)
			}
			continue
		}

		header := strings.TrimSpace(match[2])
		root := strings.SplitN(header, ".", 2)[0]
		g, ok := byRoot[root]
		if !ok {
			g = &group{root: root}
			byRoot[root] = g
			groups = append(groups, g)
		}
		if match[1] == "[[" {
			g.array = true
		}
		g.sections = append(g.sections, section{header: header, lines: []string{line}})
		current = &g.sections[len(g.sections)-1]
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].root < groups[j].root
	})

	var result strings.Builder
	writeLines := func(lines []string) {
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			result.WriteString(line)
			result.WriteString("\n")
		}
	}

	writeLines(preamble)
	for _, g := range groups {
		// Sub-tables of an array element must follow their element.
		if !g.array {
			sort.SliceStable(g.sections, func(i, j int) bool {
				return g.sections[i].header < g.sections[j].header
			})
		}
		for _, sec := range g.sections {
			if result.Len() > 0 {
				result.WriteString("\n")
			}
			writeLines(sec.lines)
		}
	}

	return result.String()
}
