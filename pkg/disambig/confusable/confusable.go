package confusable

import (
	"fmt"
	"strings"

	"github.com/cognicore/disambig/internal/internalerr"
)

// Set is an ordered, immutable group of words that are commonly confused
// with each other. Members are stored lowercased.
type Set struct {
	members []string
	index   map[string]int
}

// Common confusable groups in English text.
var (
	TheirThere = MustNew("their", "there", "they're")
	ItsIts     = MustNew("its", "it's")
	YourYoure  = MustNew("your", "you're")
	ToTooTwo   = MustNew("to", "too", "two")
	ThenThan   = MustNew("then", "than")
	AffectEff  = MustNew("affect", "effect")
	LoseLoose  = MustNew("lose", "loose")
)

// New validates words and builds a Set preserving their order.
// An empty set, an empty member or a repeated member is rejected.
func New(words ...string) (Set, error) {
	if len(words) == 0 {
		return Set{}, fmt.Errorf("confusable set is empty: %w", internalerr.ErrInvalidConfig)
	}

	s := Set{
		members: make([]string, 0, len(words)),
		index:   make(map[string]int, len(words)),
	}
	for _, w := range words {
		lw := strings.ToLower(strings.TrimSpace(w))
		if lw == "" {
			return Set{}, fmt.Errorf("confusable set has an empty member: %w", internalerr.ErrInvalidConfig)
		}
		if _, dup := s.index[lw]; dup {
			return Set{}, fmt.Errorf("confusable set has duplicate member %q: %w", lw, internalerr.ErrInvalidConfig)
		}
		s.index[lw] = len(s.members)
		s.members = append(s.members, lw)
	}
	return s, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(words ...string) Set {
	s, err := New(words...)
	if err != nil {
		panic(err)
	}
	return s
}

// Members returns a copy of the members in their configured order.
func (s Set) Members() []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.members)
}

// At returns the i-th member.
func (s Set) At(i int) string {
	return s.members[i]
}

// Contains reports whether token is a member, ignoring case.
func (s Set) Contains(token string) bool {
	return s.Index(token) >= 0
}

// Index returns the position of token in the set, or -1.
func (s Set) Index(token string) int {
	if i, ok := s.index[strings.ToLower(token)]; ok {
		return i
	}
	return -1
}

// Equal reports whether both sets hold the same members in the same order.
func (s Set) Equal(other Set) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for i := range s.members {
		if s.members[i] != other.members[i] {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	return strings.Join(s.members, "/")
}
