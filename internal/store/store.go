// Package store implements the durable record store: one JSON document per
// collection, loaded whole and replaced whole. Every mutation runs as a
// serialized read-modify-write critical section, and the document on disk is
// swapped with a temp-file rename so a concurrent reader never observes a
// partial write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when an ID does not resolve in the collection.
var ErrNotFound = errors.New("store: record not found")

// Record is any value persisted in a Collection, keyed by a positive
// integer ID.
type Record interface {
	RecordID() int
}

// document is the on-disk shape. NextID is the monotonic allocation counter;
// it is bumped in the same critical section as the write so that concurrent
// inserts can never hand out the same ID and a truncated collection never
// re-issues old IDs.
type document[T Record] struct {
	NextID  int `json:"next_id"`
	Records []T `json:"records"`
}

// Collection is a durable set of records backed by a single JSON file.
type Collection[T Record] struct {
	path string

	mu  sync.RWMutex
	doc document[T]
}

// Open loads the collection at path, creating it with seed records on first
// run. A legacy document holding a bare JSON array is accepted; its counter
// is initialized to max(id)+1 and persisted on the next write.
func Open[T Record](path string, seed []T) (*Collection[T], error) {
	c := &Collection[T]{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c.doc = document[T]{NextID: maxID(seed) + 1, Records: seed}
		if c.doc.Records == nil {
			c.doc.Records = []T{}
		}
		if err := c.write(c.doc); err != nil {
			return nil, err
		}
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &c.doc); err != nil {
		// Pre-counter documents were plain arrays.
		var records []T
		if arrErr := json.Unmarshal(raw, &records); arrErr != nil {
			return nil, fmt.Errorf("store: parse %s: %w", path, err)
		}
		c.doc = document[T]{NextID: maxID(records) + 1, Records: records}
	}
	if c.doc.Records == nil {
		c.doc.Records = []T{}
	}
	if c.doc.NextID <= maxID(c.doc.Records) {
		c.doc.NextID = maxID(c.doc.Records) + 1
	}
	return c, nil
}

// All returns a snapshot of every record, in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.doc.Records))
	copy(out, c.doc.Records)
	return out
}

// Get returns the record with the given ID.
func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.doc.Records {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.doc.Records)
}

// Insert allocates the next ID, appends the record produced by build, and
// persists. The allocation and the write commit together: if the write
// fails, the ID is not consumed and the prior content stays intact.
func (c *Collection[T]) Insert(build func(id int) T) (int, error) {
	return c.InsertIf(nil, build)
}

// InsertIf is Insert with a precondition. check runs against the current
// records inside the same critical section as the write, so a decision based
// on the collection's state (a uniqueness scan, a capacity cap) cannot race
// with a concurrent mutator. A non-nil error from check aborts the insert
// without consuming an ID.
func (c *Collection[T]) InsertIf(check func(records []T) error, build func(id int) T) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if check != nil {
		if err := check(c.doc.Records); err != nil {
			return 0, err
		}
	}

	id := c.doc.NextID
	next := document[T]{
		NextID:  id + 1,
		Records: append(append([]T{}, c.doc.Records...), build(id)),
	}
	if err := c.write(next); err != nil {
		return 0, err
	}
	c.doc = next
	return id, nil
}

// Update replaces the record with the given ID by apply's result and
// persists. The replacement keeps the record's position in the document.
func (c *Collection[T]) Update(id int, apply func(T) T) error {
	return c.UpdateIf(id, nil, apply)
}

// UpdateIf is Update with a precondition evaluated under the same lock as
// the write; see InsertIf.
func (c *Collection[T]) UpdateIf(id int, check func(records []T) error, apply func(T) T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if check != nil {
		if err := check(c.doc.Records); err != nil {
			return err
		}
	}

	idx := -1
	for i, rec := range c.doc.Records {
		if rec.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	next := document[T]{NextID: c.doc.NextID, Records: append([]T{}, c.doc.Records...)}
	next.Records[idx] = apply(next.Records[idx])
	if err := c.write(next); err != nil {
		return err
	}
	c.doc = next
	return nil
}

// Delete removes the record with the given ID and persists.
func (c *Collection[T]) Delete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := document[T]{NextID: c.doc.NextID, Records: make([]T, 0, len(c.doc.Records))}
	found := false
	for _, rec := range c.doc.Records {
		if rec.RecordID() == id {
			found = true
			continue
		}
		next.Records = append(next.Records, rec)
	}
	if !found {
		return ErrNotFound
	}
	if err := c.write(next); err != nil {
		return err
	}
	c.doc = next
	return nil
}

// write replaces the document atomically: marshal, write to a temp file in
// the same directory, fsync, rename over the target. Callers hold c.mu.
func (c *Collection[T]) write(doc document[T]) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: write %s: %w", c.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", c.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("store: write %s: %w", c.path, err)
	}
	return nil
}

func maxID[T Record](records []T) int {
	max := 0
	for _, rec := range records {
		if rec.RecordID() > max {
			max = rec.RecordID()
		}
	}
	return max
}
