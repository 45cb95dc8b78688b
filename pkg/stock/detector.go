package stock

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/nxmods/stockcheck/internal/dataset"
	"github.com/nxmods/stockcheck/internal/integrity"
	"github.com/nxmods/stockcheck/internal/yaz0"
)

// Verdict classifies one file against the stock table.
type Verdict int

const (
	// Unmodified content matches a stock fingerprint.
	Unmodified Verdict = iota
	// Modified content matches none of the stock fingerprints.
	Modified
	// Added files are not part of the stock game.
	Added
	// Corrupt content carries the Yaz0 magic but does not decompress.
	Corrupt
)

func (v Verdict) String() string {
	switch v {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Corrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Detector checks game files against one platform's stock hash table.
type Detector struct {
	platform Platform
	table    dataset.Table
	dec      yaz0.Decompressor
}

// Option configures a Detector.
type Option func(*Detector)

// WithDecompressor replaces the Yaz0 decoder used to unwrap content.
func WithDecompressor(dec yaz0.Decompressor) Option {
	return func(d *Detector) {
		d.dec = dec
	}
}

// New returns a detector backed by the table embedded for platform.
// The embedded tables are part of the build; failing to decode one means
// the binary itself is broken, so New panics instead of returning an error.
func New(platform Platform, opts ...Option) *Detector {
	table, err := dataset.Embedded(platform.String())
	if err != nil {
		panic(fmt.Sprintf("stock: embedded %s table: %v", platform, err))
	}
	return newDetector(platform, table, opts)
}

// Open returns a detector for platform, reading the table from
// tablePath when it is non-empty and using the embedded table otherwise.
// Unlike New it reports problems as errors, since the file is user input.
func Open(platform Platform, tablePath string, opts ...Option) (*Detector, error) {
	var (
		table dataset.Table
		err   error
	)
	if tablePath == "" {
		table, err = dataset.Embedded(platform.String())
	} else {
		table, err = dataset.LoadFile(tablePath)
	}
	if err != nil {
		return nil, err
	}
	return newDetector(platform, table, opts), nil
}

// NewWithTable returns a detector over a caller-supplied table. The table
// is copied; later changes to it do not affect the detector.
func NewWithTable(platform Platform, table map[string][]uint64, opts ...Option) (*Detector, error) {
	owned := make(dataset.Table, len(table))
	for p, fps := range table {
		owned[p] = slices.Clone(fps)
	}
	if err := owned.Validate(); err != nil {
		return nil, err
	}
	return newDetector(platform, owned, opts), nil
}

func newDetector(platform Platform, table dataset.Table, opts []Option) *Detector {
	d := &Detector{
		platform: platform,
		table:    table,
		dec:      yaz0.Codec{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Platform returns the platform the detector was built for.
func (d *Detector) Platform() Platform {
	return d.platform
}

// Len returns the number of files in the stock table.
func (d *Detector) Len() int {
	return len(d.table)
}

// Paths iterates the canonical paths of all stock files, in no particular
// order. The sequence reads the detector's table directly and can be
// ranged over any number of times.
func (d *Detector) Paths() iter.Seq[string] {
	return maps.Keys(d.table)
}

// ListPaths returns a sorted copy of all stock file paths.
func (d *Detector) ListPaths() []string {
	return slices.Sorted(maps.Keys(d.table))
}

// IsKnown reports whether path is a stock file.
func (d *Detector) IsKnown(path string) bool {
	_, ok := d.table[path]
	return ok
}

// IsNew reports whether path is absent from the stock game.
func (d *Detector) IsNew(path string) bool {
	return !d.IsKnown(path)
}

// Fingerprints returns a copy of the stock fingerprints for path.
func (d *Detector) Fingerprints(path string) ([]uint64, bool) {
	fps, ok := d.table[path]
	if !ok {
		return nil, false
	}
	return slices.Clone(fps), true
}

// Verdict classifies content stored under the canonical path.
func (d *Detector) Verdict(path string, content []byte) Verdict {
	fps, ok := d.table[path]
	if !ok {
		return Added
	}

	fp, err := integrity.FingerprintContent(content, d.dec)
	if err != nil {
		return Corrupt
	}
	if slices.Contains(fps, fp) {
		return Unmodified
	}
	return Modified
}

// IsModified reports whether content differs from the stock file at path.
// Files that are not in the stock table count as modified only when
// unknownCountsAsModified is set. Yaz0 content that fails to decompress
// always counts as modified.
func (d *Detector) IsModified(path string, content []byte, unknownCountsAsModified bool) bool {
	switch d.Verdict(path, content) {
	case Unmodified:
		return false
	case Added:
		return unknownCountsAsModified
	default:
		return true
	}
}
