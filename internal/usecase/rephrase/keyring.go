package rephrase

import (
	"sync/atomic"

	"github.com/kailas-cloud/campusbot/internal/domain"
)

// KeyRing rotates over generative credentials. The rotation pointer is shared
// by all concurrent callers.
type KeyRing struct {
	keys []Completer
	next atomic.Uint64
}

// NewKeyRing fails with domain.ErrNoAPIKeys when keys is empty.
func NewKeyRing(keys ...Completer) (*KeyRing, error) {
	if len(keys) == 0 {
		return nil, domain.ErrNoAPIKeys
	}
	return &KeyRing{keys: keys}, nil
}

// Next returns the key under the pointer and its slot, then advances the pointer.
func (r *KeyRing) Next() (Completer, int) {
	slot := int((r.next.Add(1) - 1) % uint64(len(r.keys)))
	return r.keys[slot], slot
}

// At returns the key in slot, wrapping around.
func (r *KeyRing) At(slot int) Completer {
	return r.keys[slot%len(r.keys)]
}

// Len is the number of keys.
func (r *KeyRing) Len() int { return len(r.keys) }
