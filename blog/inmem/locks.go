package inmem

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// keyedMutex serializes the read-modify-write sequences touching the same
// key while letting different keys proceed in parallel.
type keyedMutex struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func newKeyedMutex() keyedMutex {
	return keyedMutex{locks: xsync.NewMapOf[string, *sync.Mutex]()}
}

// lock locks key and returns the function releasing it.
func (k keyedMutex) lock(key string) func() {
	mu, _ := k.locks.LoadOrCompute(key, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}
