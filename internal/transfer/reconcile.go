package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/workday"
)

// Replacer atomically swaps the full data set of a store.
type Replacer interface {
	ReplaceAll(ctx context.Context, records []attendance.Record, overrides workday.Overrides) error
}

// IOError wraps a file failure during export or import.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DefaultFileName returns the export file name for now.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("FunnyTime_%d.json", now.Unix())
}

// DeserializeAndReplace decodes the whole document from r, then replaces
// everything in dst with it. dst is not touched when decoding fails.
func DeserializeAndReplace(ctx context.Context, r io.Reader, loc *time.Location, dst Replacer) (Snapshot, error) {
	snap, err := Decode(r, loc)
	if err != nil {
		return Snapshot{}, err
	}
	if err := dst.ReplaceAll(ctx, snap.Records, snap.Overrides); err != nil {
		return Snapshot{}, fmt.Errorf("replacing data: %w", err)
	}
	return snap, nil
}

// ExportFile writes doc to path. A partially written file is removed.
func ExportFile(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "export", Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "export", Path: path, Err: err}
	}
	if err := Encode(f, doc); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &IOError{Op: "export", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return &IOError{Op: "export", Path: path, Err: err}
	}
	return nil
}

// ImportFile reads the document at path and replaces dst's data with it.
func ImportFile(ctx context.Context, path string, loc *time.Location, dst Replacer) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, &IOError{Op: "import", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return DeserializeAndReplace(ctx, f, loc, dst)
}
