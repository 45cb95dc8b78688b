// Package canon converts game file paths into canonical resource paths.
//
// A canonical resource path is the root-less, forward-slash path of a game
// file with the Yaz0 "s" extension prefix removed, e.g.
// "Actor/Pack/Enemy_Lizalfos_Senior.bactorpack". DLC files keep an
// "Aoc/0010/" prefix. The stock hash tables are keyed on these paths.
package canon

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

const (
	baseMarker = "content/"
	aocMarker  = "aoc/0010/"
)

// rootPattern matches the base game root (Content/ or a loader romfs path
// for title 01007EF00011E000) in group 1 and the DLC root (Aoc/, Aoc/0010/
// or a loader romfs path for the DLC title variants) in group 2.
var rootPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`(?i)` +
		`((?:Content|(?:atmosphere/(?:titles|contents)/)?01007EF00011E000/romfs)/)` +
		`|` +
		`((?:Aoc(?:/0010)?|(?:atmosphere/(?:titles|contents)/)?01007EF00011[EF]00[0-2]/romfs)/)`)
})

// WithoutRoot canonicalizes a path that is already relative to a known
// root, such as the name of a file inside a SARC archive. Only the first
// ".s" is rewritten, so "Foo.sbar.sbyml" becomes "Foo.bar.sbyml".
func WithoutRoot(raw string) string {
	return strings.Replace(strings.ReplaceAll(raw, `\`, "/"), ".s", ".", 1)
}

// Canonicalize converts a path relative to a game dump or mod root into a
// canonical resource path. It reports false when the path is not inside
// the base game or DLC content roots.
func Canonicalize(raw string) (string, bool) {
	p := substituteRoots(WithoutRoot(raw))

	switch {
	case strings.HasPrefix(p, "aoc/"):
		p = strings.ReplaceAll(p, "aoc/content", "Aoc")
		if strings.HasPrefix(p, "aoc") {
			p = "Aoc" + p[len("aoc"):]
		}
		return p, true
	case strings.HasPrefix(p, "content") && !strings.Contains(p, "/aoc"):
		return strings.TrimPrefix(p, baseMarker), true
	default:
		return "", false
	}
}

// substituteRoots replaces every root match with its family marker.
func substituteRoots(p string) string {
	matches := rootPattern().FindAllStringSubmatchIndex(p, -1)
	if matches == nil {
		return p
	}

	var b strings.Builder
	b.Grow(len(p))
	last := 0
	for _, m := range matches {
		b.WriteString(p[last:m[0]])
		if m[2] >= 0 {
			b.WriteString(baseMarker)
		} else {
			b.WriteString(aocMarker)
		}
		last = m[1]
	}
	b.WriteString(p[last:])
	return b.String()
}

// IsCanonical reports whether p looks like a key of the stock hash tables:
// non-empty, forward slashes only, and without a base-game root prefix.
func IsCanonical(p string) bool {
	if p == "" || strings.ContainsRune(p, '\\') || strings.HasPrefix(p, "/") {
		return false
	}
	if strings.HasPrefix(p, "aoc/") {
		return false
	}
	loc := rootPattern().FindStringSubmatchIndex(p)
	return loc == nil || loc[0] != 0 || loc[2] < 0
}

// FromFile canonicalizes file, a path on disk below root. The path relative
// to root is tried first (root is a mod folder holding content/ and aoc/).
// Otherwise the path is cut at its last root match, which handles roots
// such as ".../content" or ".../01007EF00011E000/romfs". File names are
// NFC-normalized so decomposed names from some filesystems still match.
func FromFile(root, file string) (string, bool) {
	if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
		if p, ok := Canonicalize(norm.NFC.String(filepath.ToSlash(rel))); ok {
			return p, true
		}
	}

	full := norm.NFC.String(filepath.ToSlash(filepath.Clean(file)))
	matches := rootPattern().FindAllStringIndex(full, -1)
	if len(matches) == 0 {
		return "", false
	}
	return Canonicalize(full[matches[len(matches)-1][0]:])
}
