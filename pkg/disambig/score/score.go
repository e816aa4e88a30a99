package score

import (
	"fmt"
	"strings"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/ngram"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
)

// Zero is the score of a candidate whose context was never seen in training.
const Zero = 0.0

// Scorer estimates how likely a candidate is to fill a slot of a normalized sentence.
// Scores are unnormalized; only their relative order across candidates matters.
type Scorer interface {
	Score(candidate string, sentence []string, index int) float64
}

// Smoothing selects how count ratios are estimated.
type Smoothing int

const (
	// None uses maximum-likelihood ratios; unseen contexts score Zero.
	None Smoothing = iota
	// AddOne adds 1 to every numerator and the vocabulary size to every denominator.
	AddOne
)

func (s Smoothing) String() string {
	switch s {
	case None:
		return "none"
	case AddOne:
		return "add-one"
	}
	return fmt.Sprintf("smoothing(%d)", int(s))
}

// ParseSmoothing maps "none"/"mle" and "add-one"/"laplace" to a Smoothing.
func ParseSmoothing(s string) (Smoothing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "mle", "":
		return None, nil
	case "add-one", "addone", "add1", "laplace":
		return AddOne, nil
	}
	return 0, fmt.Errorf("unknown smoothing %q: %w", s, internalerr.ErrInvalidConfig)
}

// ratio turns a numerator count and a context count into a conditional estimate.
type ratio func(num, den int64) float64

func maxLikelihood(num, den int64) float64 {
	if den == 0 {
		return Zero
	}
	return float64(num) / float64(den)
}

func addOne(vocab int) ratio {
	v := int64(vocab)
	return func(num, den int64) float64 {
		if den+v == 0 {
			return Zero
		}
		return float64(num+1) / float64(den+v)
	}
}

// New builds the scorer matching the tables' order and the requested smoothing.
func New(t *ngram.Tables, s Smoothing) (Scorer, error) {
	if t == nil {
		return nil, fmt.Errorf("scorer needs count tables: %w", internalerr.ErrInvalidInput)
	}

	var r ratio
	switch s {
	case None:
		r = maxLikelihood
	case AddOne:
		r = addOne(t.VocabularySize())
	default:
		return nil, fmt.Errorf("unknown smoothing %d: %w", int(s), internalerr.ErrInvalidConfig)
	}

	switch t.Order {
	case normalize.Unigram:
		return unigramScorer{t: t, r: r}, nil
	case normalize.Bigram:
		return bigramScorer{t: t, r: r}, nil
	case normalize.Trigram:
		return trigramScorer{t: t, r: r}, nil
	}
	return nil, fmt.Errorf("unsupported order %d: %w", int(t.Order), internalerr.ErrInvalidConfig)
}

// unigramScorer ignores context: P(c) = count(c) / N.
type unigramScorer struct {
	t *ngram.Tables
	r ratio
}

func (u unigramScorer) Score(candidate string, _ []string, _ int) float64 {
	return u.r(u.t.Unigram(strings.ToLower(candidate)), u.t.N)
}

// bigramScorer: P(c | left) * P(right | c).
type bigramScorer struct {
	t *ngram.Tables
	r ratio
}

func (b bigramScorer) Score(candidate string, sentence []string, index int) float64 {
	c := strings.ToLower(candidate)
	left := tokenAt(sentence, index-1)
	right := tokenAt(sentence, index+1)

	return b.r(b.t.Bigram(left, c), b.t.Unigram(left)) *
		b.r(b.t.Bigram(c, right), b.t.Unigram(c))
}

// trigramScorer: P(c | l2 l1) * P(r1 | l1 c) * P(r2 | c r1).
type trigramScorer struct {
	t *ngram.Tables
	r ratio
}

func (tr trigramScorer) Score(candidate string, sentence []string, index int) float64 {
	c := strings.ToLower(candidate)
	l2 := tokenAt(sentence, index-2)
	l1 := tokenAt(sentence, index-1)
	r1 := tokenAt(sentence, index+1)
	r2 := tokenAt(sentence, index+2)

	return tr.r(tr.t.Trigram(l2, l1, c), tr.t.Bigram(l2, l1)) *
		tr.r(tr.t.Trigram(l1, c, r1), tr.t.Bigram(l1, c)) *
		tr.r(tr.t.Trigram(c, r1, r2), tr.t.Bigram(c, r1))
}

// tokenAt reads outside the sentence as boundary markers.
func tokenAt(sentence []string, i int) string {
	if i < 0 {
		return normalize.BOS
	}
	if i >= len(sentence) {
		return normalize.EOS
	}
	return sentence[i]
}
