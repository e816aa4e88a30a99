package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store persists tokenized corpora and evaluation runs.
// Trained count tables are never stored; they are rebuilt from the corpus.
type Store interface {
	Close() error

	// Corpus
	AddSentences(ctx context.Context, source string, sentences [][]string) (int, error)
	Sentences(ctx context.Context, source string) ([][]string, error)
	Sources(ctx context.Context) ([]SourceInfo, error)
	DeleteSource(ctx context.Context, source string) error

	// Evaluation runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
}

// SourceInfo describes one imported corpus source.
type SourceInfo struct {
	Name      string
	Sentences int
	Tokens    int
}

// Run records the outcome of evaluating one model variant.
type Run struct {
	ID        string
	Variant   string
	SetName   string
	Members   []string
	Default   string
	Correct   int
	Total     int
	Accuracy  float64
	TrainSize int
	TestSize  int
	CreatedAt time.Time
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a new lexicographically sortable run identifier.
func NewRunID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), idEntropy).String()
}
