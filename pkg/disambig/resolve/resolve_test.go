package resolve

import (
	"errors"
	"testing"

	"github.com/cognicore/disambig/internal/fixture"
	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/ngram"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
	"github.com/cognicore/disambig/pkg/disambig/score"
)

// fixedScorer returns preset scores per candidate.
type fixedScorer map[string]float64

func (f fixedScorer) Score(candidate string, _ []string, _ int) float64 {
	return f[candidate]
}

func TestResolverPicksArgMax(t *testing.T) {
	r := &Resolver{
		Set:     confusable.TheirThere,
		Default: "there",
		Scorer:  fixedScorer{"their": 0.2, "there": 0.1, "they're": 0.5},
	}

	got, err := r.Guess([]string{"x"}, 0)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if got != "they're" {
		t.Errorf("Guess = %q, want they're", got)
	}
}

func TestResolverAllZeroFallsBackToDefault(t *testing.T) {
	r := &Resolver{Set: confusable.TheirThere, Default: "there", Scorer: fixedScorer{}}

	got, err := r.Guess([]string{"x"}, 0)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if got != "there" {
		t.Errorf("Guess = %q, want default there", got)
	}
}

func TestResolverTieKeepsDefault(t *testing.T) {
	// Default ties with an earlier member; strict > keeps the default.
	r := &Resolver{
		Set:     confusable.TheirThere,
		Default: "they're",
		Scorer:  fixedScorer{"their": 0.4, "there": 0.1, "they're": 0.4},
	}

	got, _ := r.Guess([]string{"x"}, 0)
	if got != "they're" {
		t.Errorf("Guess = %q, want they're", got)
	}
}

func TestResolverTieBetweenNonDefaultsTakesFirst(t *testing.T) {
	r := &Resolver{
		Set:     confusable.TheirThere,
		Default: "there",
		Scorer:  fixedScorer{"their": 0.3, "there": 0.1, "they're": 0.3},
	}

	got, _ := r.Guess([]string{"x"}, 0)
	if got != "their" {
		t.Errorf("Guess = %q, want their", got)
	}
}

func TestResolverWithoutScorerIsNotImplemented(t *testing.T) {
	r := &Resolver{Set: confusable.TheirThere, Default: "there"}

	_, err := r.Guess([]string{"x"}, 0)
	if !errors.Is(err, internalerr.ErrNotImplemented) {
		t.Errorf("Guess error = %v, want ErrNotImplemented", err)
	}
	if _, err := r.Scores([]string{"x"}, 0); !errors.Is(err, internalerr.ErrNotImplemented) {
		t.Errorf("Scores error = %v, want ErrNotImplemented", err)
	}
}

func TestResolverIndexOutOfRange(t *testing.T) {
	r := &Resolver{Set: confusable.TheirThere, Default: "there", Scorer: fixedScorer{}}

	for _, idx := range []int{-1, 1} {
		if _, err := r.Guess([]string{"x"}, idx); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("Guess(index %d) error = %v, want ErrInvalidInput", idx, err)
		}
	}
}

func TestNewResolverRejectsForeignDefault(t *testing.T) {
	if _, err := NewResolver(confusable.TheirThere, "then", fixedScorer{}); err == nil {
		t.Error("NewResolver should reject a default outside the set")
	}
}

func TestResolverOnFixture(t *testing.T) {
	n := normalize.ForOrder(normalize.Bigram)
	tables := ngram.Count(n.NormalizeCorpus(fixture.Sentences()), normalize.Bigram)
	sc, err := score.New(tables, score.None)
	if err != nil {
		t.Fatalf("score.New: %v", err)
	}
	r, err := NewResolver(confusable.TheirThere, ngram.DefaultGuess(tables, confusable.TheirThere), sc)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	sentence := n.Normalize([]string{"Their", "old", "dog"})
	got, err := r.Guess(sentence, 1)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if got != "their" {
		t.Errorf("Guess = %q, want their", got)
	}

	// Nothing in training follows "zebra"; every score is zero.
	sentence = n.Normalize([]string{"zebra", "their", "zebra"})
	got, _ = r.Guess(sentence, 2)
	if got != "there" {
		t.Errorf("Guess = %q, want default there", got)
	}

	scores, err := r.Scores(n.Normalize([]string{"Their", "old", "dog"}), 1)
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if len(scores) != 3 || scores["their"] <= 0 {
		t.Errorf("unexpected scores: %v", scores)
	}
}

func TestBaseline(t *testing.T) {
	b := Baseline{Default: "there"}
	got, err := b.Guess([]string{"their"}, 0)
	if err != nil || got != "there" {
		t.Errorf("Guess = %q, %v; want there", got, err)
	}
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	a := NewRandom(confusable.TheirThere, 42)
	b := NewRandom(confusable.TheirThere, 42)

	for i := 0; i < 50; i++ {
		ga, _ := a.Guess([]string{"x"}, 0)
		gb, _ := b.Guess([]string{"x"}, 0)
		if ga != gb {
			t.Fatalf("guess %d differs: %q vs %q", i, ga, gb)
		}
		if !confusable.TheirThere.Contains(ga) {
			t.Fatalf("guess %q is not a member", ga)
		}
	}
}
