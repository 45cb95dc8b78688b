// Package report serializes scan results.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/nxmods/stockcheck/internal/scan"
	"github.com/nxmods/stockcheck/pkg/errclass"
	"github.com/nxmods/stockcheck/pkg/fsutil"
	"github.com/nxmods/stockcheck/pkg/jsonutil"
)

// Format names a report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported encodings.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatCBOR}
}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", errclass.ErrFormatUnsupported.WithMessagef("unknown report format %q", s)
}

// cborEnc uses Core Deterministic Encoding with RFC 3339 timestamps so
// the same result always produces the same bytes.
var cborEnc cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	cborEnc, err = opts.EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode serializes res in the given format.
func Encode(format Format, res *scan.Result) ([]byte, error) {
	switch format {
	case FormatJSON:
		return jsonutil.CanonicalIndent(res, "  ")
	case FormatYAML:
		return yaml.Marshal(res)
	case FormatCBOR:
		return cborEnc.Marshal(res)
	}
	return nil, errclass.ErrFormatUnsupported.WithMessagef("unknown report format %q", format)
}

// Decode parses a report previously produced by Encode.
func Decode(format Format, data []byte) (*scan.Result, error) {
	var (
		res scan.Result
		err error
	)
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &res)
	case FormatYAML:
		err = yaml.Unmarshal(data, &res)
	case FormatCBOR:
		err = cbor.Unmarshal(data, &res)
	default:
		return nil, errclass.ErrFormatUnsupported.WithMessagef("unknown report format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s report: %w", format, err)
	}
	return &res, nil
}

// Write encodes res and atomically replaces the file at path.
func Write(path string, format Format, res *scan.Result) error {
	data, err := Encode(format, res)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
