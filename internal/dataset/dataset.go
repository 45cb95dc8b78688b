// Package dataset loads the stock hash tables.
//
// A table maps canonical resource paths to every XXH64 fingerprint that
// counts as unmodified for that file: the stock hash plus the hashes
// produced by re-saving stock files with common modding tools. The Wii U
// table is pinned to game version 1.5.0 and the Switch table to 1.6.0.
//
// Tables are stored as JSON objects ({"Actor/...": [u64, ...]}) and may be
// wrapped in zstd, lz4 or gzip; the wrapper is detected from its magic
// bytes. The embedded tables are zstd-compressed.
package dataset

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/jsonc"

	"github.com/nxmods/stockcheck/pkg/canon"
	"github.com/nxmods/stockcheck/pkg/errclass"
)

//go:embed data/*.json.zst
var embedded embed.FS

// Table maps canonical resource paths to acceptable fingerprints.
type Table map[string][]uint64

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	gzipMagic = []byte{0x1F, 0x8B}
)

// Embedded decodes the table compiled into the binary under name
// ("wiiu" or "switch").
func Embedded(name string) (Table, error) {
	f, err := embedded.Open(path.Join("data", name+".json.zst"))
	if err != nil {
		return nil, errclass.ErrDatasetCorrupt.WithMessagef("no embedded dataset %q", name)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset %s: %w", name, err)
	}
	return t, nil
}

// EmbeddedNames lists the embedded tables.
func EmbeddedNames() []string {
	entries, _ := embedded.ReadDir("data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json.zst"))
	}
	sort.Strings(names)
	return names
}

// LoadFile decodes a table from disk, typically a newer or extended table
// than the embedded one.
func LoadFile(p string) (Table, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", p, err)
	}
	return t, nil
}

// Decode reads a table, expanding a zstd, lz4 or gzip wrapper when present.
// Comments and trailing commas are tolerated so hand-curated tables can be
// annotated.
func Decode(r io.Reader) (Table, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)

	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, errclass.ErrDatasetCorrupt.WithMessagef("zstd reader: %v", err)
		}
		defer zr.Close()
		src = zr
	case bytes.HasPrefix(head, lz4Magic):
		src = lz4.NewReader(br)
	case bytes.HasPrefix(head, gzipMagic):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errclass.ErrDatasetCorrupt.WithMessagef("gzip reader: %v", err)
		}
		defer gr.Close()
		src = gr
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, errclass.ErrDatasetCorrupt.WithMessagef("expand: %v", err)
	}

	var t Table
	if err := json.Unmarshal(jsonc.ToJSON(raw), &t); err != nil {
		return nil, errclass.ErrDatasetCorrupt.WithMessagef("parse: %v", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that every key is a canonical path and every
// fingerprint set is non-empty.
func (t Table) Validate() error {
	if t == nil {
		return errclass.ErrDatasetCorrupt.WithMessage("dataset is not a JSON object")
	}
	for p, fps := range t {
		if !canon.IsCanonical(p) {
			return errclass.ErrDatasetCorrupt.WithMessagef("key is not a canonical path: %q", p)
		}
		if len(fps) == 0 {
			return errclass.ErrDatasetCorrupt.WithMessagef("empty fingerprint set for %s", p)
		}
	}
	return nil
}
