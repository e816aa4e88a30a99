package disambig

import (
	"fmt"
	"sync/atomic"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/eval"
	"github.com/cognicore/disambig/pkg/disambig/ngram"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
	"github.com/cognicore/disambig/pkg/disambig/resolve"
	"github.com/cognicore/disambig/pkg/disambig/score"
)

// Options configures a Model
type Options struct {
	Set       confusable.Set
	Order     normalize.Order
	Smoothing score.Smoothing
	Workers   int // >1 counts the training corpus in parallel shards
}

// Model is a confusable-word disambiguator trained from a corpus of
// correctly written sentences.
//
// Train publishes a complete snapshot of counts, default guess and scorer in
// one step; concurrent Guess and Evaluate calls see either the previous or
// the new snapshot, never a mix.
type Model struct {
	opts  Options
	norm  normalize.Normalizer
	state atomic.Pointer[snapshot]
}

type snapshot struct {
	tables   *ngram.Tables
	resolver *resolve.Resolver
}

// New validates opts and creates an untrained model.
func New(opts Options) (*Model, error) {
	if opts.Set.Len() == 0 {
		return nil, fmt.Errorf("model needs a confusable set: %w", internalerr.ErrInvalidConfig)
	}
	if !opts.Order.Valid() {
		return nil, fmt.Errorf("unsupported order %d: %w", int(opts.Order), internalerr.ErrInvalidConfig)
	}
	if opts.Smoothing != score.None && opts.Smoothing != score.AddOne {
		return nil, fmt.Errorf("unknown smoothing %d: %w", int(opts.Smoothing), internalerr.ErrInvalidConfig)
	}
	return &Model{opts: opts, norm: normalize.ForOrder(opts.Order)}, nil
}

// Variant names the model for reports, e.g. "bigram" or "trigram+add-one".
func (m *Model) Variant() string {
	return VariantName(m.opts.Order, m.opts.Smoothing)
}

// VariantName formats an order/smoothing pair.
func VariantName(o normalize.Order, s score.Smoothing) string {
	if s == score.None {
		return o.String()
	}
	return o.String() + "+" + s.String()
}

// Set returns the confusable set the model resolves.
func (m *Model) Set() confusable.Set {
	return m.opts.Set
}

// Normalizer returns the normalization shared by training and evaluation.
func (m *Model) Normalizer() normalize.Normalizer {
	return m.norm
}

// Train counts the corpus and replaces any previous training.
// Sentences are raw tokens; they are normalized here.
func (m *Model) Train(corpus [][]string) error {
	normalized := m.norm.NormalizeCorpus(corpus)

	var tables *ngram.Tables
	if m.opts.Workers > 1 {
		tables = ngram.CountParallel(normalized, m.opts.Order, m.opts.Workers)
	} else {
		tables = ngram.Count(normalized, m.opts.Order)
	}

	sc, err := score.New(tables, m.opts.Smoothing)
	if err != nil {
		return fmt.Errorf("build scorer: %w", err)
	}
	r, err := resolve.NewResolver(m.opts.Set, ngram.DefaultGuess(tables, m.opts.Set), sc)
	if err != nil {
		return fmt.Errorf("build resolver: %w", err)
	}

	m.state.Store(&snapshot{tables: tables, resolver: r})
	return nil
}

// Trained reports whether Train has completed at least once.
func (m *Model) Trained() bool {
	return m.state.Load() != nil
}

func (m *Model) current() (*snapshot, error) {
	s := m.state.Load()
	if s == nil {
		return nil, internalerr.ErrNotTrained
	}
	return s, nil
}

// DefaultGuess returns the most frequent confusable member of the training corpus.
func (m *Model) DefaultGuess() (string, error) {
	s, err := m.current()
	if err != nil {
		return "", err
	}
	return s.resolver.Default, nil
}

// Tables returns the trained count tables. Callers must not modify them.
func (m *Model) Tables() (*ngram.Tables, error) {
	s, err := m.current()
	if err != nil {
		return nil, err
	}
	return s.tables, nil
}

// Guess resolves slot index of an already normalized sentence.
// Model implements resolve.Guesser.
func (m *Model) Guess(sentence []string, index int) (string, error) {
	s, err := m.current()
	if err != nil {
		return "", err
	}
	return s.resolver.Guess(sentence, index)
}

// Evaluate measures accuracy over a raw test corpus.
func (m *Model) Evaluate(test [][]string) (eval.Result, error) {
	s, err := m.current()
	if err != nil {
		return eval.Result{}, err
	}
	return eval.Evaluate(s.resolver, m.norm, m.opts.Set, test)
}

// Correction is a confusable word the model would write differently.
type Correction struct {
	Index     int    // position in the raw sentence
	Original  string // token as written
	Suggested string // lowercased set member
}

// Check resolves every confusable word of a raw sentence and reports the
// ones where the model disagrees with what was written.
func (m *Model) Check(raw []string) ([]Correction, error) {
	s, err := m.current()
	if err != nil {
		return nil, err
	}

	sentence := m.norm.Normalize(raw)
	var out []Correction
	for i, tok := range raw {
		if !m.opts.Set.Contains(tok) {
			continue
		}
		guess, err := s.resolver.Guess(sentence, i+m.norm.Offset())
		if err != nil {
			return nil, err
		}
		if m.opts.Set.Index(tok) != m.opts.Set.Index(guess) {
			out = append(out, Correction{Index: i, Original: tok, Suggested: guess})
		}
	}
	return out, nil
}
