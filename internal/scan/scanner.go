// Package scan checks every file of a mod or dump directory against a
// stock detector.
package scan

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/nxmods/stockcheck/internal/integrity"
	"github.com/nxmods/stockcheck/internal/yaz0"
	"github.com/nxmods/stockcheck/pkg/canon"
	"github.com/nxmods/stockcheck/pkg/logging"
	"github.com/nxmods/stockcheck/pkg/progress"
	"github.com/nxmods/stockcheck/pkg/stock"
)

// Status is the outcome recorded for one file.
type Status string

const (
	StatusUnmodified Status = "unmodified"
	StatusModified   Status = "modified"
	StatusAdded      Status = "added"
	StatusCorrupt    Status = "corrupt"
	// StatusSkipped marks files whose path is not a game resource path.
	StatusSkipped Status = "skipped"
	// StatusError marks files that could not be read.
	StatusError Status = "error"
)

func statusOf(v stock.Verdict) Status {
	switch v {
	case stock.Unmodified:
		return StatusUnmodified
	case stock.Added:
		return StatusAdded
	case stock.Corrupt:
		return StatusCorrupt
	default:
		return StatusModified
	}
}

// Entry is the result for a single file.
type Entry struct {
	File        string `json:"file" yaml:"file" cbor:"file"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty" cbor:"path,omitempty"`
	Status      Status `json:"status" yaml:"status" cbor:"status"`
	Modified    bool   `json:"modified" yaml:"modified" cbor:"modified"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty" cbor:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty" cbor:"error,omitempty"`
}

// Summary counts entries per status.
type Summary struct {
	Total      int `json:"total" yaml:"total" cbor:"total"`
	Unmodified int `json:"unmodified" yaml:"unmodified" cbor:"unmodified"`
	Modified   int `json:"modified" yaml:"modified" cbor:"modified"`
	Added      int `json:"added" yaml:"added" cbor:"added"`
	Corrupt    int `json:"corrupt" yaml:"corrupt" cbor:"corrupt"`
	Skipped    int `json:"skipped" yaml:"skipped" cbor:"skipped"`
	Errors     int `json:"errors" yaml:"errors" cbor:"errors"`
	// Flagged counts entries whose Modified field is set.
	Flagged int `json:"flagged" yaml:"flagged" cbor:"flagged"`
}

func (s *Summary) add(e Entry) {
	s.Total++
	switch e.Status {
	case StatusUnmodified:
		s.Unmodified++
	case StatusModified:
		s.Modified++
	case StatusAdded:
		s.Added++
	case StatusCorrupt:
		s.Corrupt++
	case StatusSkipped:
		s.Skipped++
	case StatusError:
		s.Errors++
	}
	if e.Modified {
		s.Flagged++
	}
}

// Result is the outcome of scanning one directory.
type Result struct {
	Root          string    `json:"root" yaml:"root" cbor:"root"`
	Platform      string    `json:"platform" yaml:"platform" cbor:"platform"`
	GameVersion   string    `json:"game_version" yaml:"game_version" cbor:"game_version"`
	NewIsModified bool      `json:"new_is_modified" yaml:"new_is_modified" cbor:"new_is_modified"`
	StartedAt     time.Time `json:"started_at" yaml:"started_at" cbor:"started_at"`
	FinishedAt    time.Time `json:"finished_at" yaml:"finished_at" cbor:"finished_at"`
	Summary       Summary   `json:"summary" yaml:"summary" cbor:"summary"`
	Entries       []Entry   `json:"entries" yaml:"entries" cbor:"entries"`
}

// Options tune a scan.
type Options struct {
	// Workers is the number of files checked concurrently. Zero means
	// runtime.NumCPU().
	Workers int
	// NewIsModified counts files missing from the stock game as modified.
	NewIsModified bool
	// Progress receives one update per checked file.
	Progress progress.Callback
	// Logger defaults to the global logger.
	Logger *logging.Logger
}

// Scanner checks directories against a detector.
type Scanner struct {
	det  *stock.Detector
	opts Options
}

// New creates a scanner using det for every verdict.
func New(det *stock.Detector, opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Progress == nil {
		opts.Progress = progress.Noop
	}
	if opts.Logger == nil {
		opts.Logger = logging.Global()
	}
	return &Scanner{det: det, opts: opts}
}

// Scan walks root and checks every regular file below it. Entries are
// sorted by canonical path; skipped files sort by their relative path.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	res := &Result{
		Root:          root,
		Platform:      s.det.Platform().String(),
		GameVersion:   s.det.Platform().GameVersion(),
		NewIsModified: s.opts.NewIsModified,
		StartedAt:     time.Now().UTC(),
	}

	files, err := collect(ctx, root)
	if err != nil {
		return nil, err
	}

	log := s.opts.Logger.WithFields(map[string]any{"root": root, "platform": res.Platform})
	log.Info("scan started", map[string]any{"files": len(files), "workers": s.opts.Workers})

	jobs := make(chan string)
	results := make(chan Entry, len(files))

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				results <- s.checkFile(root, file, log)
			}
		}()
	}

	go func() {
		defer func() {
			close(jobs)
			wg.Wait()
			close(results)
		}()
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	prog := progress.New("scan", len(files), s.opts.Progress)
	res.Entries = make([]Entry, 0, len(files))
	for e := range results {
		res.Entries = append(res.Entries, e)
		res.Summary.add(e)
		prog.Increment(e.File)
	}
	if err := ctx.Err(); err != nil {
		log.Warn("scan cancelled", map[string]any{"checked": len(res.Entries)})
		return nil, err
	}
	prog.Done("")

	slices.SortFunc(res.Entries, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(sortKey(a), sortKey(b)), cmp.Compare(a.File, b.File))
	})
	res.FinishedAt = time.Now().UTC()

	log.Info("scan finished", map[string]any{
		"total":    res.Summary.Total,
		"modified": res.Summary.Modified,
		"added":    res.Summary.Added,
		"skipped":  res.Summary.Skipped,
		"flagged":  res.Summary.Flagged,
	})
	return res, nil
}

func sortKey(e Entry) string {
	if e.Path != "" {
		return e.Path
	}
	return e.File
}

func collect(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func (s *Scanner) checkFile(root, file string, log *logging.Logger) Entry {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		rel = file
	}
	e := Entry{File: filepath.ToSlash(rel)}

	path, ok := canon.FromFile(root, file)
	if !ok {
		e.Status = StatusSkipped
		log.Debug("path not recognized", map[string]any{"file": e.File})
		return e
	}
	e.Path = path

	content, err := os.ReadFile(file)
	if err != nil {
		e.Status = StatusError
		e.Error = err.Error()
		log.Warn("read failed", map[string]any{"file": e.File, "error": err.Error()})
		return e
	}

	v := s.det.Verdict(path, content)
	e.Status = statusOf(v)
	// Same rule as Detector.IsModified, without fingerprinting twice.
	e.Modified = v != stock.Unmodified && (v != stock.Added || s.opts.NewIsModified)

	// Record fingerprints of non-stock content so they can be compared
	// against newer dataset releases.
	if e.Status == StatusModified || e.Status == StatusAdded {
		if fp, err := integrity.FingerprintContent(content, yaz0.Codec{}); err == nil {
			e.Fingerprint = integrity.Format(fp)
		}
	}
	return e
}
