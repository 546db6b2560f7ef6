package agent

import "sync"

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// keyLocks hands out one mutex per session key and drops it once nothing
// holds or waits on it.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func newKeyLocks() keyLocks {
	return keyLocks{locks: map[string]*keyLock{}}
}

func (k *keyLocks) acquire(key string) *keyLock {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	return l
}

func (k *keyLocks) release(key string, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// lock blocks until key is free and returns the unlock func.
func (k *keyLocks) lock(key string) func() {
	l := k.acquire(key)
	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.release(key, l)
	}
}

// tryLock is lock without waiting. ok is false when key is held.
func (k *keyLocks) tryLock(key string) (unlock func(), ok bool) {
	l := k.acquire(key)
	if !l.mu.TryLock() {
		k.release(key, l)
		return nil, false
	}
	return func() {
		l.mu.Unlock()
		k.release(key, l)
	}, true
}
