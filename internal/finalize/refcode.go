package finalize

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	CodePrefix     = "VFS"
	codeAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeSuffixLen  = 3
	codeSuffixSpan = 36 * 36 * 36
)

// CodeGenerator produces reference codes of the form VFS + six clock digits
// + three base-36 characters. Consecutive codes from one generator never repeat.
type CodeGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	rand func(n int) int
	last string
}

func NewCodeGenerator(now func() time.Time, rnd func(n int) int) *CodeGenerator {
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = rand.IntN
	}
	return &CodeGenerator{now: now, rand: rnd}
}

func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	digits := fmt.Sprintf("%06d", g.now().UnixMilli()%1_000_000)
	n := g.rand(codeSuffixSpan)
	code := CodePrefix + digits + suffix(n)
	if code == g.last {
		code = CodePrefix + digits + suffix((n+1)%codeSuffixSpan)
	}
	g.last = code
	return code
}

func suffix(n int) string {
	var b [codeSuffixLen]byte
	for i := codeSuffixLen - 1; i >= 0; i-- {
		b[i] = codeAlphabet[n%36]
		n /= 36
	}
	return string(b[:])
}
