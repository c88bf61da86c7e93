package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
)

// CSVTable keeps a whole CSV file in memory. Every write rewrites the file
// through a temporary file renamed over the original.
type CSVTable[T any, P Entity[T]] struct {
	path string

	mu      sync.RWMutex
	rows    []T
	modTime time.Time
	size    int64
}

// OpenCSV loads the table at path, creating the file with its header row
// when it does not exist yet.
func OpenCSV[T any, P Entity[T]](path string) (*CSVTable[T, P], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	t := &CSVTable[T, P]{path: path}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := t.write([]T{}); err != nil {
			return nil, err
		}
		log.Printf("File %s not found, created it with headers", path)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

// Path returns the backing file.
func (t *CSVTable[T, P]) Path() string {
	return t.path
}

// Reload re-reads the backing file if it changed since the last read or write.
// The write lock is held throughout so a concurrent Insert or Save cannot be
// replaced by an older copy of the file.
func (t *CSVTable[T, P]) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	info, err := os.Stat(t.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", t.path, err)
	}
	if info.ModTime().Equal(t.modTime) && info.Size() == t.size {
		return nil
	}
	return t.load()
}

func (t *CSVTable[T, P]) All(ctx context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows), nil
}

func (t *CSVTable[T, P]) Get(ctx context.Context, id uint) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.rows {
		if P(&t.rows[i]).GetID() == id {
			return t.rows[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (t *CSVTable[T, P]) Insert(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var next uint = 1
	for i := range t.rows {
		if id := P(&t.rows[i]).GetID(); id >= next {
			next = id + 1
		}
	}
	P(rec).SetID(next)

	rows := append(slices.Clone(t.rows), *rec)
	if err := t.write(rows); err != nil {
		P(rec).SetID(0)
		return err
	}
	t.rows = rows
	return nil
}

func (t *CSVTable[T, P]) Save(ctx context.Context, recs ...T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rows := slices.Clone(t.rows)
	for i := range recs {
		id := P(&recs[i]).GetID()
		idx := slices.IndexFunc(rows, func(row T) bool { return P(&row).GetID() == id })
		if idx < 0 {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		rows[idx] = recs[i]
	}

	if err := t.write(rows); err != nil {
		return err
	}
	t.rows = rows
	return nil
}

// load replaces the in-memory rows with the file content. Cells that fail to
// parse are logged and left at their zero value. Callers hold the write lock
// once the table is shared.
func (t *CSVTable[T, P]) load() error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", t.path, err)
	}

	rows := []T{}
	err = gocsv.UnmarshalWithErrorHandler(f, func(perr *csv.ParseError) bool {
		log.Printf("Warning: %s line %d column %d: %v", t.path, perr.Line, perr.Column, perr.Err)
		return true
	}, &rows)
	if err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return fmt.Errorf("read %s: %w", t.path, err)
	}

	slices.SortStableFunc(rows, func(a, b T) int {
		ida, idb := P(&a).GetID(), P(&b).GetID()
		switch {
		case ida < idb:
			return -1
		case ida > idb:
			return 1
		}
		return 0
	})

	t.rows = rows
	t.modTime = info.ModTime()
	t.size = info.Size()
	return nil
}

// write persists rows; callers that touch t.rows hold the write lock.
func (t *CSVTable[T, P]) write(rows []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), "."+filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", t.path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := gocsv.Marshal(&rows, tmp); err != nil {
		return fmt.Errorf("encode %s: %w", t.path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", t.path, err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		return fmt.Errorf("replace %s: %w", t.path, err)
	}
	committed = true

	if info, err := os.Stat(t.path); err == nil {
		t.modTime = info.ModTime()
		t.size = info.Size()
	}
	return nil
}
