// Package solver: the snapshot writeback collaborator.
package solver

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/katalvlaran/lvlopt/ndarray"
)

// Writer persists a state snapshot. The solver hands it a deep copy, so
// implementations may retain or mutate what they receive.
type Writer interface {
	Write(iteration int, s State) error
}

// snapshot is the gob wire form of a State.
type snapshot struct {
	Iteration int
	Kinds     map[string]ndarray.Kind
	Shapes    map[string][]int
	Data      map[string][]float64
}

// SnapshotWriter persists gob-encoded snapshots to a single file, each
// write replacing the previous one via an atomic rename. A crash mid-write
// leaves the last complete snapshot intact.
type SnapshotWriter struct {
	path string
}

// NewSnapshotWriter targets path; its directory must exist.
func NewSnapshotWriter(path string) (*SnapshotWriter, error) {
	if path == "" {
		return nil, ErrBadOption
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &SnapshotWriter{path: path}, nil
}

// Write implements Writer.
func (w *SnapshotWriter) Write(iteration int, s State) error {
	snap := snapshot{
		Iteration: iteration,
		Kinds:     make(map[string]ndarray.Kind, len(s)),
		Shapes:    make(map[string][]int, len(s)),
		Data:      make(map[string][]float64, len(s)),
	}
	for name, v := range s {
		snap.Kinds[name] = v.Kind()
		snap.Shapes[name] = v.Shape()
		snap.Data[name] = append([]float64(nil), v.Data()...)
	}

	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, w.path)
}

// ReadSnapshot decodes the snapshot at path back into an iteration count
// and a State.
func ReadSnapshot(path string) (int, State, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return 0, nil, err
	}

	s := make(State, len(snap.Data))
	for name, data := range snap.Data {
		a, err := ndarray.New(snap.Kinds[name], data, snap.Shapes[name]...)
		if err != nil {
			return 0, nil, err
		}
		s[name] = a
	}

	return snap.Iteration, s, nil
}
