package allocator

import (
	"fmt"
	"sync"
	"time"
)

// SequenceStore hands out consecutive counts per calendar day. It is an
// injected capability so a stronger implementation can issue server-side
// sequences; see InMemorySequence for the limits of the default one.
type SequenceStore interface {
	Next(day string) int
}

// InMemorySequence is process-local and non-durable: counts reset on restart
// and are not coordinated across instances, so ids from it are NOT
// collision-safe across devices or sessions.
type InMemorySequence struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewInMemorySequence() *InMemorySequence {
	return &InMemorySequence{counts: make(map[string]int)}
}

func (s *InMemorySequence) Next(day string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[day]++
	return s.counts[day]
}

// DailyOrderID computes the DDMMYYYY + zero-padded daily count order id
// variant from an injected sequence.
func DailyOrderID(now time.Time, seq SequenceStore) string {
	day := now.Format("02012006")
	return fmt.Sprintf("%s%03d", day, seq.Next(day))
}
