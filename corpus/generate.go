package corpus

import (
	"math/rand"
	"strings"

	"github.com/dictgate/dictgate/core"
)

// RandomWord draws a random word over the corpus alphabet with length
// uniform in [MinWordLen, MaxWordLen]. It makes no membership claim.
func RandomWord(rng *rand.Rand) string {
	length := MinWordLen + rng.Intn(MaxWordLen-MinWordLen+1)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(Alphabet[rng.Intn(len(Alphabet))])
	}
	return b.String()
}

// GenerateChallenge produces a fresh challenge: a fair coin decides the
// answer, then the prompt is either a uniformly sampled member or a
// random word verified absent from the corpus.
//
// The non-member path retries until a candidate misses the corpus.
// There is no iteration cap: with the corpus far sparser than the
// alphabet space the loop terminates almost surely, but a corpus
// covering the entire word space would spin forever.
func (c *Corpus) GenerateChallenge(rng *rand.Rand) core.Challenge {
	answer := rng.Intn(2) == 0
	if answer {
		return core.Challenge{Prompt: c.RandomMember(rng), Answer: true}
	}

	for {
		candidate := RandomWord(rng)
		if !c.Contains(candidate) {
			return core.Challenge{Prompt: candidate, Answer: false}
		}
	}
}
