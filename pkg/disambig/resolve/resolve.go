package resolve

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/score"
)

// Guesser picks the confusable member that best fits slot index of a normalized sentence.
type Guesser interface {
	Guess(sentence []string, index int) (string, error)
}

// Resolver scores every member of Set in the slot and returns the arg-max.
//
// The running best starts at Default and its own score, and another member
// only replaces it with a strictly higher score. When every member scores
// the same (typically all zero for unseen contexts) the answer is Default.
//
// A Resolver without a Scorer has no decision policy; Guess fails with
// internalerr.ErrNotImplemented.
type Resolver struct {
	Set     confusable.Set
	Default string
	Scorer  score.Scorer
}

// NewResolver checks that def belongs to set and wires the scorer.
func NewResolver(set confusable.Set, def string, sc score.Scorer) (*Resolver, error) {
	if !set.Contains(def) {
		return nil, fmt.Errorf("default guess %q is not in %s: %w", def, set, internalerr.ErrInvalidInput)
	}
	return &Resolver{Set: set, Default: def, Scorer: sc}, nil
}

// Guess implements Guesser.
func (r *Resolver) Guess(sentence []string, index int) (string, error) {
	if r.Scorer == nil {
		return "", fmt.Errorf("resolver has no scoring strategy: %w", internalerr.ErrNotImplemented)
	}
	if err := checkIndex(sentence, index); err != nil {
		return "", err
	}

	best := r.Default
	bestScore := r.Scorer.Score(best, sentence, index)
	for i := 0; i < r.Set.Len(); i++ {
		m := r.Set.At(i)
		if m == best {
			continue
		}
		if s := r.Scorer.Score(m, sentence, index); s > bestScore {
			best, bestScore = m, s
		}
	}
	return best, nil
}

// Scores returns the score of every member in set order, for diagnostics.
func (r *Resolver) Scores(sentence []string, index int) (map[string]float64, error) {
	if r.Scorer == nil {
		return nil, fmt.Errorf("resolver has no scoring strategy: %w", internalerr.ErrNotImplemented)
	}
	if err := checkIndex(sentence, index); err != nil {
		return nil, err
	}
	out := make(map[string]float64, r.Set.Len())
	for _, m := range r.Set.Members() {
		out[m] = r.Scorer.Score(m, sentence, index)
	}
	return out, nil
}

// Baseline always answers with the most frequent member seen in training.
type Baseline struct {
	Default string
}

// Guess implements Guesser.
func (b Baseline) Guess(sentence []string, index int) (string, error) {
	if err := checkIndex(sentence, index); err != nil {
		return "", err
	}
	return b.Default, nil
}

// Random picks a member uniformly at random. It is a reference point:
// its accuracy tends to 100/|set| percent.
type Random struct {
	set confusable.Set
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a random guesser with a fixed seed.
func NewRandom(set confusable.Set, seed int64) *Random {
	return &Random{set: set, rng: rand.New(rand.NewSource(seed))}
}

// Guess implements Guesser.
func (r *Random) Guess(sentence []string, index int) (string, error) {
	if err := checkIndex(sentence, index); err != nil {
		return "", err
	}
	r.mu.Lock()
	i := r.rng.Intn(r.set.Len())
	r.mu.Unlock()
	return r.set.At(i), nil
}

func checkIndex(sentence []string, index int) error {
	if index < 0 || index >= len(sentence) {
		return fmt.Errorf("index %d outside sentence of %d tokens: %w", index, len(sentence), internalerr.ErrInvalidInput)
	}
	return nil
}
