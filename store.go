package carteira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Aggregate is the unit of persistence: one portfolio's ledger and its
// positions travel together as one explicit value, never as ambient state.
type Aggregate struct {
	Ledger    *Ledger
	Positions Positions
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{Ledger: NewLedger()}
}

// NewAggregateID returns a fresh aggregate identifier.
func NewAggregateID() string { return uuid.NewString() }

// Store is the persistence collaborator: whole-document load and replace per
// aggregate id, treated as atomic per call.
//
// The engine itself provides no locking; callers must serialize writes to the
// same aggregate (one writer per aggregate id), because a concurrent
// read-modify-write would silently lose ledger entries. Reads are pure folds
// and need no coordination.
type Store interface {
	Load(id string) (*Aggregate, error)
	Save(id string, a *Aggregate) error
	List() ([]string, error)
}

// FileStore persists each aggregate as one JSON document under a directory,
// named by aggregate id.
type FileStore struct {
	dir string
}

// NewFileStore creates the store directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create store directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// storedAggregate is the on-disk document.
type storedAggregate struct {
	// Entries is the ledger, one canonical JSON object per entry, in
	// chronological order.
	Entries   []json.RawMessage `json:"entries"`
	Positions Positions         `json:"positions"`
}

// Load reads and decodes the whole aggregate document. A missing document is
// an empty aggregate, so a fresh id starts from a clean state.
func (s *FileStore) Load(id string) (*Aggregate, error) {
	content, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		a := NewAggregate()
		a.Ledger.SetName(id)
		return a, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read aggregate %q: %w", id, err)
	}

	var doc storedAggregate
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("could not decode aggregate %q: %w", id, err)
	}

	var lines bytes.Buffer
	for _, raw := range doc.Entries {
		// MarshalIndent reflows raw entries across lines on save; compact
		// each one back to the single canonical line DecodeLedger expects.
		if err := json.Compact(&lines, raw); err != nil {
			return nil, fmt.Errorf("could not decode ledger of aggregate %q: %w", id, err)
		}
		lines.WriteByte('\n')
	}
	ledger, err := DecodeLedger(&lines)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger of aggregate %q: %w", id, err)
	}
	ledger.SetName(id)
	return &Aggregate{Ledger: ledger, Positions: doc.Positions}, nil
}

// Save encodes and replaces the whole aggregate document. The write goes
// through a temporary file and a rename, so a crashed save never leaves a
// half-written document behind.
func (s *FileStore) Save(id string, a *Aggregate) error {
	doc := storedAggregate{Positions: a.Positions}
	for entry := range a.Ledger.Entries() {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("could not encode %s entry: %w", entry.What(), err)
		}
		doc.Entries = append(doc.Entries, raw)
	}

	content, err := json.MarshalIndent(doc, "", " ")
	if err != nil {
		return fmt.Errorf("could not encode aggregate %q: %w", id, err)
	}

	tmp := s.path(id) + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("could not write aggregate %q: %w", id, err)
	}
	if err := os.Rename(tmp, s.path(id)); err != nil {
		return fmt.Errorf("could not replace aggregate %q: %w", id, err)
	}
	return nil
}

// List returns the ids of all stored aggregates.
func (s *FileStore) List() ([]string, error) {
	var ids []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(filepath.Base(path), ".json"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list aggregates in %q: %w", s.dir, err)
	}
	return ids, nil
}
