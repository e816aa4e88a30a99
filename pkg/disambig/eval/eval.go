package eval

import (
	"fmt"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
	"github.com/cognicore/disambig/pkg/disambig/resolve"
)

// ErrNoConfusables is returned when a test corpus holds no confusable word,
// so accuracy is undefined.
var ErrNoConfusables = fmt.Errorf("no confusable words in test corpus: %w", internalerr.ErrInvalidInput)

// Result summarises one evaluation pass.
type Result struct {
	Correct  int
	Total    int
	Accuracy float64 // percentage in [0, 100]

	// Confusion[truth][guess] counts decisions per true member.
	Confusion map[string]map[string]int
}

// Errors returns the number of wrong decisions.
func (r Result) Errors() int {
	return r.Total - r.Correct
}

// Evaluate blanks out every confusable word of corpus, asks g to fill it in
// and compares the answer with the word actually written.
//
// Sentences are normalized with n, which must be the normalizer used to
// train g. Matching against set ignores case.
func Evaluate(g resolve.Guesser, n normalize.Normalizer, set confusable.Set, corpus [][]string) (Result, error) {
	res := Result{Confusion: make(map[string]map[string]int)}

	for si, raw := range corpus {
		var sentence []string
		for i, tok := range raw {
			if !set.Contains(tok) {
				continue
			}
			if sentence == nil {
				sentence = n.Normalize(raw)
			}

			guess, err := g.Guess(sentence, i+n.Offset())
			if err != nil {
				return Result{}, fmt.Errorf("sentence %d token %d: %w", si, i, err)
			}

			truth := set.At(set.Index(tok))
			res.Total++
			if guess == truth {
				res.Correct++
			}
			if res.Confusion[truth] == nil {
				res.Confusion[truth] = make(map[string]int)
			}
			res.Confusion[truth][guess]++
		}
	}

	acc, err := Accuracy(res.Correct, res.Total)
	if err != nil {
		return Result{}, err
	}
	res.Accuracy = acc
	return res, nil
}

// Accuracy returns correct/total as a percentage.
func Accuracy(correct, total int) (float64, error) {
	if total == 0 {
		return 0, ErrNoConfusables
	}
	if correct < 0 || correct > total {
		return 0, fmt.Errorf("correct %d out of range [0, %d]: %w", correct, total, internalerr.ErrInvalidInput)
	}
	return float64(correct) / float64(total) * 100, nil
}

// ErrorReduction is the relative decrease in error rate, in percent, of
// candidate compared with baseline (both accuracies in percent).
// It is 0 when the baseline makes no errors.
func ErrorReduction(baseline, candidate float64) float64 {
	baseErr := 100 - baseline
	if baseErr == 0 {
		return 0
	}
	return (baseErr - (100 - candidate)) / baseErr * 100
}
