package service

import (
	"hash/fnv"
	"sync"
)

// defaultLockStripes is sized so unrelated sessions rarely collide
// while keeping the lock table fixed and allocation-free.
const defaultLockStripes = 64

// sessionLocks serializes read-modify-write cycles per session id.
// Sessions hashing to the same stripe serialize against each other;
// that costs latency under collision, never correctness. The store's
// version guard remains the source of truth, these locks just keep
// in-process writers from burning their retry budget against each
// other.
type sessionLocks struct {
	stripes []sync.Mutex
}

func newSessionLocks(n int) *sessionLocks {
	if n <= 0 {
		n = defaultLockStripes
	}
	return &sessionLocks{stripes: make([]sync.Mutex, n)}
}

// lock returns the mutex guarding id's stripe. The caller holds it for
// the duration of one read-modify-write cycle.
func (l *sessionLocks) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &l.stripes[h.Sum32()%uint32(len(l.stripes))]
}
