package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	sources map[string][][]string
	runs    map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		sources: make(map[string][][]string),
		runs:    make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AddSentences appends non-empty sentences to a source.
func (s *Store) AddSentences(ctx context.Context, source string, sentences [][]string) (int, error) {
	if strings.TrimSpace(source) == "" {
		return 0, fmt.Errorf("empty source name: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := 0
	existing := s.sources[source]
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		existing = append(existing, copyTokens(sentence))
		stored++
	}
	s.sources[source] = existing
	return stored, nil
}

// Sentences returns a copy of a source's sentences.
func (s *Store) Sentences(ctx context.Context, source string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sentences, ok := s.sources[source]
	if !ok || len(sentences) == 0 {
		return nil, fmt.Errorf("source %q: %w", source, internalerr.ErrNotFound)
	}
	out := make([][]string, len(sentences))
	for i, sentence := range sentences {
		out[i] = copyTokens(sentence)
	}
	return out, nil
}

// Sources lists sources sorted by name.
func (s *Store) Sources(ctx context.Context) ([]store.SourceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.SourceInfo, 0, len(s.sources))
	for name, sentences := range s.sources {
		info := store.SourceInfo{Name: name, Sentences: len(sentences)}
		for _, sentence := range sentences {
			info.Tokens += len(sentence)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteSource removes a source.
func (s *Store) DeleteSource(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sources, source)
	return nil
}

// SaveRun stores or replaces a run.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.Members = copyTokens(r.Members)
	s.runs[r.ID] = r
	return nil
}

// GetRun returns a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, false, nil
	}
	r.Members = copyTokens(r.Members)
	return r, true, nil
}

// Runs returns runs newest first; limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		r.Members = copyTokens(r.Members)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyTokens(tokens []string) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}
