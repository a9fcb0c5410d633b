// Package generator builds typing text sequences.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// ErrInsufficientCorpus is returned when more words are requested than the corpus holds.
var ErrInsufficientCorpus = errors.New("insufficient corpus")

// Generator samples distinct words from a fixed corpus.
type Generator struct {
	rnd     *rand.Rand
	words   []string
	capsPct float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithCaps sets the probability of capitalizing a sampled word.
func WithCaps(pct float64) Option {
	return func(g *Generator) {
		g.capsPct = pct
	}
}

// New returns a Generator over corpus. A nil rnd is seeded with the current time.
func New(corpus []string, rnd *rand.Rand, opts ...Option) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Generator{rnd: rnd, words: dedupe(corpus)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size reports the number of distinct words available.
func (g *Generator) Size() int {
	return len(g.words)
}

// Generate returns n distinct words sampled uniformly without replacement.
// Words come back in sample order.
func (g *Generator) Generate(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("word count must be > 0, got %d", n)
	}
	if n > len(g.words) {
		return nil, fmt.Errorf("%w: requested %d words, corpus has %d", ErrInsufficientCorpus, n, len(g.words))
	}
	pool := make([]string, len(g.words))
	copy(pool, g.words)
	result := make([]string, 0, n)
	for i := 0; i < n; i++ {
		j := i + g.rnd.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		result = append(result, applyCaps(g.rnd, pool[i], g.capsPct))
	}
	return result, nil
}

// Text returns n sampled words joined by single spaces.
func (g *Generator) Text(n int) (string, error) {
	words, err := g.Generate(n)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
