// Package corpus holds the immutable word universe used for
// dictionary-membership challenges and the generator that produces
// challenges against it.
package corpus

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/dictgate/dictgate/core"
)

// Word shape shared by the corpus builder and the non-member generator.
// Words are drawn from lowercase letters, digits 0-8, apostrophe and
// hyphen, with lengths in [MinWordLen, MaxWordLen].
const (
	Alphabet   = "abcdefghijklmnopqrstuvwxyz012345678'-"
	MinWordLen = 1
	MaxWordLen = 19
)

// Corpus is an immutable, sorted, deduplicated word list. It is built
// once at startup and is safe for concurrent reads without locking.
type Corpus struct {
	words []string
}

// New builds a Corpus from words, sorting and deduplicating them.
func New(words []string) *Corpus {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)

	deduped := sorted[:0]
	for i, w := range sorted {
		if i == 0 || w != sorted[i-1] {
			deduped = append(deduped, w)
		}
	}

	return &Corpus{words: deduped}
}

// Load reads a corpus from a newline-separated word file. Lines are
// trimmed and blank lines skipped. An empty file is an error: a gate
// with no members cannot pose meaningful challenges.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, core.ErrEmptyCorpus
	}

	return New(words), nil
}

// Len returns the number of words in the corpus.
func (c *Corpus) Len() int {
	return len(c.words)
}

// Contains reports whether word is in the corpus. The word is
// case-normalized to lowercase before the binary search.
func (c *Corpus) Contains(word string) bool {
	word = strings.ToLower(word)
	i := sort.SearchStrings(c.words, word)
	return i < len(c.words) && c.words[i] == word
}

// RandomMember returns a uniformly chosen corpus word. It panics on an
// empty corpus; Load and the serve command both refuse one.
func (c *Corpus) RandomMember(rng *rand.Rand) string {
	return c.words[rng.Intn(len(c.words))]
}
