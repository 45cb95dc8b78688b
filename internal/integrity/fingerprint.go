// Package integrity computes content fingerprints for game files.
//
// A fingerprint is XXH64 with seed 0 over the full payload. It is a fast
// equality-class check against the stock hash tables, not a tamper-proof
// digest.
package integrity

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/nxmods/stockcheck/internal/yaz0"
)

// Fingerprint hashes data as-is.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintReader hashes everything read from r.
func FingerprintReader(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, fmt.Errorf("read content: %w", err)
	}
	return d.Sum64(), nil
}

// FingerprintContent hashes the payload of data, unwrapping a Yaz0
// container first when data carries its magic. A nil dec uses yaz0.Codec.
func FingerprintContent(data []byte, dec yaz0.Decompressor) (uint64, error) {
	if !yaz0.HasMagic(data) {
		return Fingerprint(data), nil
	}
	if dec == nil {
		dec = yaz0.Codec{}
	}
	payload, err := dec.Decompress(data)
	if err != nil {
		return 0, fmt.Errorf("unwrap yaz0: %w", err)
	}
	return Fingerprint(payload), nil
}

// Format renders a fingerprint the way the stock tables are usually
// inspected by hand: 16 lowercase hex digits.
func Format(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
