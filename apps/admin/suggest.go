package main

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const suggestMinRatio = 0.6

// suggest returns the command names that look like name, best match first.
func suggest(name string) []string {
	type match struct {
		name  string
		ratio float64
	}

	m := difflib.NewMatcher(nil, strings.Split(strings.ToLower(name), ""))
	var matches []match
	for _, cmd := range commandNames() {
		m.SetSeq1(strings.Split(cmd, ""))
		if ratio := m.Ratio(); ratio >= suggestMinRatio {
			matches = append(matches, match{name: cmd, ratio: ratio})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	names := make([]string, len(matches))
	for i, mt := range matches {
		names[i] = mt.name
	}
	return names
}
