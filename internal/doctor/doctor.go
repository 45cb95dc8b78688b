// Package doctor runs health checks on the stock tables.
package doctor

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nxmods/stockcheck/internal/dataset"
	"github.com/nxmods/stockcheck/pkg/canon"
	"github.com/nxmods/stockcheck/pkg/config"
	"github.com/nxmods/stockcheck/pkg/stock"
)

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Path        string `json:"path,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy  bool      `json:"healthy"`
	Findings []Finding `json:"findings"`
}

func (r *Result) add(f Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity == "critical" {
		r.Healthy = false
	}
}

// Doctor checks the embedded tables and any configured overrides.
type Doctor struct {
	overrides config.DatasetConfig
}

// NewDoctor creates a new doctor.
func NewDoctor(overrides config.DatasetConfig) *Doctor {
	return &Doctor{overrides: overrides}
}

// Check runs all diagnostic checks. Strict mode also verifies that every
// key can be produced by the canonicalizer and compares overrides against
// the embedded tables.
func (d *Doctor) Check(strict bool) (*Result, error) {
	result := &Result{Healthy: true}

	embedded := make(map[stock.Platform]dataset.Table)
	for _, p := range stock.Platforms() {
		source := "embedded:" + p.String()
		t, err := dataset.Embedded(p.String())
		if err != nil {
			result.add(Finding{
				Category:    "dataset",
				Description: fmt.Sprintf("embedded table does not load: %v", err),
				Severity:    "critical",
				Path:        source,
			})
			continue
		}
		embedded[p] = t
		checkTable(result, source, t, strict)
	}

	for _, p := range stock.Platforms() {
		path := d.overrides.For(p)
		if path == "" {
			continue
		}
		t, err := dataset.LoadFile(path)
		if err != nil {
			result.add(Finding{
				Category:    "override",
				Description: fmt.Sprintf("%s override does not load: %v", p, err),
				Severity:    "critical",
				Path:        path,
			})
			continue
		}
		result.add(Finding{
			Category:    "override",
			Description: fmt.Sprintf("%s override in use (%d entries)", p, len(t)),
			Severity:    "info",
			Path:        path,
		})
		checkTable(result, path, t, strict)
		if strict && embedded[p] != nil {
			checkCoverage(result, path, embedded[p], t)
		}
	}

	return result, nil
}

func checkTable(result *Result, source string, t dataset.Table, strict bool) {
	if len(t) == 0 {
		result.add(Finding{
			Category:    "dataset",
			Description: "table has no entries",
			Severity:    "critical",
			Path:        source,
		})
		return
	}

	for _, key := range slices.Sorted(maps.Keys(t)) {
		fps := t[key]
		sorted := slices.Sorted(slices.Values(fps))
		if len(slices.Compact(sorted)) != len(fps) {
			result.add(Finding{
				Category:    "dataset",
				Description: fmt.Sprintf("duplicate fingerprints for %s in %s", key, source),
				Severity:    "warning",
				Path:        key,
			})
		}
		if strict && !reachable(key) {
			result.add(Finding{
				Category:    "dataset",
				Description: fmt.Sprintf("%s in %s cannot be produced from a game path", key, source),
				Severity:    "warning",
				Path:        key,
			})
		}
	}
}

// reachable reports whether key is what the canonicalizer yields for the
// file's path under a content or aoc root.
func reachable(key string) bool {
	raw := "content/" + key
	if rest, ok := strings.CutPrefix(key, "Aoc/"); ok {
		raw = "aoc/" + rest
	}
	got, ok := canon.Canonicalize(raw)
	return ok && got == key
}

func checkCoverage(result *Result, source string, embedded, override dataset.Table) {
	missing := 0
	for key := range embedded {
		if _, ok := override[key]; !ok {
			missing++
		}
	}
	if missing > 0 {
		result.add(Finding{
			Category:    "override",
			Description: fmt.Sprintf("override omits %d of %d embedded paths", missing, len(embedded)),
			Severity:    "info",
			Path:        source,
		})
	}
}
