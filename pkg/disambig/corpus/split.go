package corpus

import (
	"fmt"
	"math/rand"

	"github.com/cognicore/disambig/internal/internalerr"
)

// Split shuffles a copy of corpus with the given seed and cuts it into a
// training part holding ratio of the sentences and a test part with the rest.
// The input is left untouched and the two parts share no sentence slices with it.
func Split(corpus [][]string, ratio float64, seed int64) (train, test [][]string, err error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, fmt.Errorf("split ratio %v not in (0, 1): %w", ratio, internalerr.ErrInvalidConfig)
	}

	shuffled := make([][]string, len(corpus))
	for i, s := range corpus {
		shuffled[i] = append([]string(nil), s...)
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(float64(len(shuffled)) * ratio)
	return shuffled[:cut:cut], shuffled[cut:], nil
}
