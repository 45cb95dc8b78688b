package scan_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxmods/stockcheck/internal/scan"
	"github.com/nxmods/stockcheck/internal/yaz0"
	"github.com/nxmods/stockcheck/pkg/logging"
	"github.com/nxmods/stockcheck/pkg/stock"
)

func fixture(path string) []byte {
	return bytes.Repeat([]byte(fmt.Sprintf("stockcheck fixture %s %s\n", stock.WiiU, path)), 8)
}

func padded(path string) []byte {
	b := fixture(path)
	pad := (64 - len(b)%64) % 64
	if pad == 0 {
		pad = 64
	}
	return append(b, make([]byte, pad)...)
}

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, data, 0644))
}

// setupMod lays out a Wii U style mod folder covering every status.
func setupMod(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "content/Actor/ActorInfo.product.sbyml", fixture("Actor/ActorInfo.product.byml"))
	writeFile(t, root, "content/Actor/Pack/Enemy_Lizalfos_Senior.bactorpack",
		yaz0.Compress(fixture("Actor/Pack/Enemy_Lizalfos_Senior.bactorpack")))
	writeFile(t, root, "content/Actor/Pack/Weapon_New.bactorpack", []byte("brand new actor"))
	writeFile(t, root, "aoc/0010/Map/MainField/A-1/A-1_Dynamic.smubin",
		padded("Aoc/0010/Map/MainField/A-1/A-1_Dynamic.mubin"))
	writeFile(t, root, "content/Event/EventInfo.product.sbyml",
		[]byte("Yaz0\x00\x00\x10\x00\x00\x00\x00\x00\x00\x00\x00\x00"))
	writeFile(t, root, "content/Pack/Bootup.pack", []byte("edited bootup"))
	writeFile(t, root, "readme.txt", []byte("my mod"))
	return root
}

func statuses(res *scan.Result) map[string]scan.Status {
	out := make(map[string]scan.Status, len(res.Entries))
	for _, e := range res.Entries {
		out[e.File] = e.Status
	}
	return out
}

func TestScan_Statuses(t *testing.T) {
	root := setupMod(t)
	s := scan.New(stock.New(stock.WiiU), scan.Options{Workers: 3})

	res, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, map[string]scan.Status{
		"content/Actor/ActorInfo.product.sbyml":               scan.StatusUnmodified,
		"content/Actor/Pack/Enemy_Lizalfos_Senior.bactorpack": scan.StatusUnmodified,
		"content/Actor/Pack/Weapon_New.bactorpack":            scan.StatusAdded,
		"aoc/0010/Map/MainField/A-1/A-1_Dynamic.smubin":       scan.StatusUnmodified,
		"content/Event/EventInfo.product.sbyml":               scan.StatusCorrupt,
		"content/Pack/Bootup.pack":                            scan.StatusModified,
		"readme.txt":                                          scan.StatusSkipped,
	}, statuses(res))

	assert.Equal(t, scan.Summary{
		Total:      7,
		Unmodified: 3,
		Modified:   1,
		Added:      1,
		Corrupt:    1,
		Skipped:    1,
		Flagged:    2,
	}, res.Summary)
	assert.Equal(t, "wiiu", res.Platform)
	assert.Equal(t, "1.5.0", res.GameVersion)
	assert.False(t, res.FinishedAt.Before(res.StartedAt))
}

func TestScan_SortedByCanonicalPath(t *testing.T) {
	root := setupMod(t)
	res, err := scan.New(stock.New(stock.WiiU), scan.Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	var keys []string
	for _, e := range res.Entries {
		if e.Path != "" {
			keys = append(keys, e.Path)
		} else {
			keys = append(keys, e.File)
		}
	}
	assert.Equal(t, []string{
		"Actor/ActorInfo.product.byml",
		"Actor/Pack/Enemy_Lizalfos_Senior.bactorpack",
		"Actor/Pack/Weapon_New.bactorpack",
		"Aoc/0010/Map/MainField/A-1/A-1_Dynamic.mubin",
		"Event/EventInfo.product.byml",
		"Pack/Bootup.pack",
		"readme.txt",
	}, keys)
}

func TestScan_NewIsModified(t *testing.T) {
	root := setupMod(t)
	res, err := scan.New(stock.New(stock.WiiU), scan.Options{NewIsModified: true}).Scan(context.Background(), root)
	require.NoError(t, err)

	assert.True(t, res.NewIsModified)
	assert.Equal(t, 3, res.Summary.Flagged)
	for _, e := range res.Entries {
		if e.Status == scan.StatusAdded {
			assert.True(t, e.Modified, e.File)
		}
	}
}

func TestScan_ModifiedEntriesCarryFingerprint(t *testing.T) {
	root := setupMod(t)
	res, err := scan.New(stock.New(stock.WiiU), scan.Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	for _, e := range res.Entries {
		switch e.Status {
		case scan.StatusModified, scan.StatusAdded:
			assert.Len(t, e.Fingerprint, 16, e.File)
		default:
			assert.Empty(t, e.Fingerprint, e.File)
		}
	}
}

func TestScan_WrongPlatform(t *testing.T) {
	root := setupMod(t)
	res, err := scan.New(stock.New(stock.Switch), scan.Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	// ActorInfo exists on both platforms but with different bytes.
	assert.Equal(t, scan.StatusModified, statuses(res)["content/Actor/ActorInfo.product.sbyml"])
	assert.Equal(t, scan.StatusAdded, statuses(res)["content/Pack/Bootup.pack"])
}

func TestScan_Progress(t *testing.T) {
	root := setupMod(t)

	var (
		mu    sync.Mutex
		calls int
		last  [2]int
	)
	cb := func(op string, current, total int, message string) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "scan", op)
		calls++
		last = [2]int{current, total}
	}

	_, err := scan.New(stock.New(stock.WiiU), scan.Options{Progress: cb}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 8, calls) // one per file plus the final Done
	assert.Equal(t, [2]int{7, 7}, last)
}

func TestScan_Logs(t *testing.T) {
	root := setupMod(t)

	var buf bytes.Buffer
	logger := logging.NewLogger(logging.LevelDebug)
	logger.SetOutput(&buf)

	_, err := scan.New(stock.New(stock.WiiU), scan.Options{Logger: logger, Workers: 1}).Scan(context.Background(), root)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"scan started"`)
	assert.Contains(t, out, `"scan finished"`)
	assert.Contains(t, out, `"path not recognized"`)
}

func TestScan_EmptyDir(t *testing.T) {
	res, err := scan.New(stock.New(stock.WiiU), scan.Options{}).Scan(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Equal(t, scan.Summary{}, res.Summary)
}

func TestScan_Cancelled(t *testing.T) {
	root := setupMod(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scan.New(stock.New(stock.WiiU), scan.Options{}).Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_BadRoot(t *testing.T) {
	s := scan.New(stock.New(stock.WiiU), scan.Options{})

	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = s.Scan(context.Background(), file)
	assert.ErrorContains(t, err, "not a directory")
}
