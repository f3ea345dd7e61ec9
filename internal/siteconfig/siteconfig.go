// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package siteconfig discovers the Google Scholar profile URL inside a
// Jekyll _config.yml. The scan is deliberately line-oriented rather than a
// YAML parse: a half-edited config with unrelated syntax problems should
// still yield the URL.
package siteconfig

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// configKey is the _config.yml entry holding the profile URL.
const configKey = "googlescholar"

// ScholarURL scans line-oriented config text for the first
// "googlescholar: <url>" entry, skipping comment lines and trimming
// optional surrounding quotes. The second return value reports whether a
// value was found.
func ScholarURL(r io.Reader) (string, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok || strings.TrimSpace(key) != configKey {
			continue
		}

		value = strings.TrimSpace(value)
		value = trimMatchingQuotes(value)
		if value == "" {
			continue
		}
		return value, true
	}
	return "", false
}

// ScholarURLFromFile applies ScholarURL to the file at path. A missing
// file is not an error; it just means no URL was discovered.
func ScholarURLFromFile(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	return ScholarURL(f)
}

func trimMatchingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
