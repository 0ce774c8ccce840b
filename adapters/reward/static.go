package reward

import (
	"fmt"

	"github.com/dictgate/dictgate/ports"
)

// StaticFlag issues the classic CTF-style reward: the configured
// secret wrapped in flag{...}, one per completed run.
type StaticFlag struct {
	secret string
}

// NewStaticFlag creates a flag issuer around secret.
func NewStaticFlag(secret string) ports.RewardIssuer {
	return &StaticFlag{secret: secret}
}

// Issue returns the flag body. The client identity is unused; every
// finisher receives the same flag.
func (f *StaticFlag) Issue(string) (string, error) {
	return fmt.Sprintf("flag{%s}\n", f.secret), nil
}
