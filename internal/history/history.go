package history

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/thoreinstein/antika/internal/launch"
	"github.com/thoreinstein/antika/internal/paths"
)

var runsBucket = []byte("runs")

// LockTimeout bounds how long Open waits for another process's lock.
const LockTimeout = time.Second

var (
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("history store is closed")

	// ErrLocked indicates another process holds the history database.
	ErrLocked = errors.New("history database is locked by another process")
)

// Run is one recorded dispatch of a workflow.
type Run struct {
	ID        uint64    `json:"id"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"started_at"`
	Launched  int       `json:"launched"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Failures  []string  `json:"failures,omitempty"`
}

// Total returns the number of tools the run covered.
func (r Run) Total() int { return r.Launched + r.Failed + r.Skipped }

// FromReport summarizes a dispatch report as a Run started at the given time.
func FromReport(report *launch.Report, startedAt time.Time) Run {
	run := Run{
		Mode:      report.Workflow,
		StartedAt: startedAt.UTC(),
		Launched:  report.Succeeded(),
		Failed:    report.Failed(),
		Skipped:   report.Skipped(),
	}
	for _, res := range report.Failures() {
		run.Failures = append(run.Failures, res.Tool.Target)
	}
	return run
}

// Store is a bbolt-backed run history.
type Store struct {
	mu     sync.RWMutex
	db     *bolt.DB
	path   string
	closed bool
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "creating history directory")
	}

	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: LockTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.Mark(errors.Wrapf(err, "opening %s", trimmed), ErrLocked)
		}
		return nil, errors.Wrapf(err, "opening %s", trimmed)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "initializing history schema")
	}

	return &Store{db: db, path: trimmed}, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close releases the database. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Record appends run and returns it with its assigned ID.
func (s *Store) Record(run Run) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Run{}, ErrClosed
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runsBucket)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		run.ID = id
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
	if err != nil {
		return Run{}, errors.Wrap(err, "recording run")
	}
	return run, nil
}

// Recent returns up to n runs, newest first. n <= 0 returns every run.
func (s *Store) Recent(n int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	var runs []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(runsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if n > 0 && len(runs) >= n {
				break
			}
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return errors.Wrapf(err, "decoding run %d", btoi(k))
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading history")
	}
	return runs, nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
