package keymat

import (
	"errors"
	"sync"
	"time"

	"legacy-tls/lib/secret"

	"github.com/benbjohnson/clock"
)

// ErrWiped is returned when key material is requested after it has been
// erased.
var ErrWiped = errors.New("key material wiped")

// Vault owns a session's sliced keys and guarantees they are zeroized:
// on Close, and unconditionally once the lifetime elapses. The record
// layer borrows the slices, it never owns them.
type Vault struct {
	mu    sync.Mutex
	keys  Keys
	block *secret.Buffer
	wiped bool

	done chan struct{}
	once sync.Once
}

// NewVault takes ownership of keys. A lifetime of zero disables the
// deadline; Close is then the only wipe trigger.
func NewVault(clk clock.Clock, keys Keys, lifetime time.Duration) *Vault {
	v := &Vault{keys: keys, done: make(chan struct{})}

	if lifetime > 0 {
		timer := clk.Timer(lifetime)
		go func() {
			select {
			case <-timer.C:
				v.wipe()
			case <-v.done:
				timer.Stop()
			}
		}()
	}

	return v
}

// NewVaultFromBlock copies the raw key block into an owned buffer, slices
// it, and vaults the result. The caller may discard (or wipe) its own
// copy of the block immediately.
func NewVaultFromBlock(clk clock.Clock, block []byte, macLen, keyLen, ivLen int, lifetime time.Duration) (*Vault, error) {
	owned := secret.NewBuffer(block)

	keys, err := Slice(owned.Bytes(), macLen, keyLen, ivLen)
	if err != nil {
		owned.Wipe()
		return nil, err
	}

	v := NewVault(clk, keys, lifetime)
	v.block = owned
	return v, nil
}

// Keys returns the held slices. They remain valid only until Close or the
// lifetime deadline, whichever comes first.
func (v *Vault) Keys() (Keys, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.wiped {
		return Keys{}, ErrWiped
	}
	return v.keys, nil
}

// Close wipes the key material and releases the deadline goroutine.
// Safe to call more than once.
func (v *Vault) Close() {
	v.once.Do(func() { close(v.done) })
	v.wipe()
}

func (v *Vault) wipe() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.wiped {
		return
	}
	v.wiped = true

	for _, b := range [][]byte{
		v.keys.ClientMAC, v.keys.ServerMAC,
		v.keys.ClientKey, v.keys.ServerKey,
		v.keys.ClientIV, v.keys.ServerIV,
	} {
		secret.Zeroize(b)
	}
	if v.block != nil {
		v.block.Wipe()
		v.block = nil
	}
	v.keys = Keys{}
}
