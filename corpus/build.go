package corpus

import (
	"bufio"
	"io"
	"math/rand"
	"sort"
)

// Default build sizes for the offline dictionary step.
const (
	DefaultRawCount  = 20_000_000
	DefaultKeepCount = 10_000_000
)

// Build generates the offline dictionary file: rawCount random words,
// sorted and deduplicated, truncated to at most keepCount, written one
// per line. It returns the number of words written.
//
// This is the startup-time-excluded build step; the running gate only
// ever reads the resulting file through Load.
func Build(rng *rand.Rand, rawCount, keepCount int, w io.Writer) (int, error) {
	words := make([]string, 0, rawCount)
	for i := 0; i < rawCount; i++ {
		words = append(words, RandomWord(rng))
	}

	sort.Strings(words)
	deduped := words[:0]
	for i, word := range words {
		if i == 0 || word != words[i-1] {
			deduped = append(deduped, word)
		}
	}
	if len(deduped) > keepCount {
		deduped = deduped[:keepCount]
	}

	bw := bufio.NewWriter(w)
	for _, word := range deduped {
		if _, err := bw.WriteString(word); err != nil {
			return 0, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return 0, err
		}
	}
	return len(deduped), bw.Flush()
}
