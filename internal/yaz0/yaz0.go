// Package yaz0 implements the Yaz0 compression container used by Nintendo
// console titles. Files whose extension starts with "s" (.sbactorpack,
// .smubin, .sbyml) are normally stored in this container.
package yaz0

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/nxmods/stockcheck/pkg/errclass"
	"github.com/nxmods/stockcheck/pkg/fsutil"
)

// Magic is the 4-byte marker every Yaz0 stream starts with.
const Magic = "Yaz0"

const (
	headerSize  = 16
	minMatch    = 3
	maxMatch    = 0xFF + 0x12
	maxDistance = 0x1000

	// Upper bound on the up-front allocation; a forged header size must
	// not make us reserve gigabytes before the stream proves it.
	maxPrealloc = 64 << 20
)

// Decompressor turns a compressed container into its payload.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec is the default Decompressor.
type Codec struct{}

// Decompress implements Decompressor.
func (Codec) Decompress(data []byte) ([]byte, error) {
	return Decompress(data)
}

// HasMagic reports whether data begins with the Yaz0 marker.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// DecompressedSize returns the payload size recorded in the header.
func DecompressedSize(data []byte) (int, error) {
	if len(data) < headerSize {
		return 0, errclass.ErrDecompressFailed.WithMessagef("header too short: %d bytes", len(data))
	}
	if !HasMagic(data) {
		return 0, errclass.ErrDecompressFailed.WithMessagef("bad magic %q", data[:4])
	}
	return int(binary.BigEndian.Uint32(data[4:8])), nil
}

// Decompress decodes a complete Yaz0 stream.
func Decompress(data []byte) ([]byte, error) {
	size, err := DecompressedSize(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, min(size, maxPrealloc))
	src := data[headerSize:]
	i := 0
	for len(out) < size {
		if i >= len(src) {
			return nil, truncated(len(out), size)
		}
		flags := src[i]
		i++

		for bit := 0; bit < 8 && len(out) < size; bit++ {
			if flags&(0x80>>bit) != 0 {
				if i >= len(src) {
					return nil, truncated(len(out), size)
				}
				out = append(out, src[i])
				i++
				continue
			}

			if i+1 >= len(src) {
				return nil, truncated(len(out), size)
			}
			b1, b2 := int(src[i]), int(src[i+1])
			i += 2

			dist := ((b1 & 0x0F) << 8) | b2
			dist++
			n := b1 >> 4
			if n == 0 {
				if i >= len(src) {
					return nil, truncated(len(out), size)
				}
				n = int(src[i]) + 0x12
				i++
			} else {
				n += 2
			}

			from := len(out) - dist
			if from < 0 {
				return nil, errclass.ErrDecompressFailed.WithMessagef(
					"back-reference %d bytes before start of output at offset %d", dist, len(out))
			}
			// Byte-wise copy: the source window may overlap what is being written.
			for k := 0; k < n && len(out) < size; k++ {
				out = append(out, out[from+k])
			}
		}
	}

	return out, nil
}

func truncated(have, want int) error {
	return errclass.ErrDecompressFailed.WithMessagef("stream truncated after %d of %d bytes", have, want)
}

// Compress encodes data as a Yaz0 stream using a greedy LZ search over a
// 4 KiB window.
func Compress(data []byte) []byte {
	out := make([]byte, headerSize, headerSize+len(data)+len(data)/8+1)
	copy(out, Magic)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(data)))

	pos := 0
	for pos < len(data) {
		flagIdx := len(out)
		out = append(out, 0)

		for bit := 0; bit < 8 && pos < len(data); bit++ {
			dist, n := findMatch(data, pos)
			if n < minMatch {
				out[flagIdx] |= 0x80 >> bit
				out = append(out, data[pos])
				pos++
				continue
			}

			d := dist - 1
			if n >= 0x12 {
				out = append(out, byte(d>>8), byte(d), byte(n-0x12))
			} else {
				out = append(out, byte((n-2)<<4|d>>8), byte(d))
			}
			pos += n
		}
	}

	return out
}

// findMatch returns the longest earlier occurrence of the bytes at pos.
func findMatch(data []byte, pos int) (dist, length int) {
	limit := min(len(data)-pos, maxMatch)
	if limit < minMatch {
		return 0, 0
	}
	for i := max(pos-maxDistance, 0); i < pos; i++ {
		n := 0
		for n < limit && data[i+n] == data[pos+n] {
			n++
		}
		if n > length {
			length, dist = n, pos-i
			if n == limit {
				break
			}
		}
	}
	return dist, length
}

// DecompressFile decodes the Yaz0 file at src into dst.
func DecompressFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read compressed file: %w", err)
	}

	decompressed, err := Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", src, err)
	}

	if err := fsutil.AtomicWrite(dst, decompressed, 0644); err != nil {
		return fmt.Errorf("write decompressed file: %w", err)
	}
	return nil
}

// CompressFile encodes the file at src into a Yaz0 file at dst.
func CompressFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := fsutil.AtomicWrite(dst, Compress(data), 0644); err != nil {
		return fmt.Errorf("write compressed file: %w", err)
	}
	return nil
}
