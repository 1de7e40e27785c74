// Package protocol is the registry of IM protocol add-ons. Add-ons register
// a factory under their signature from an init function, the way database
// drivers do, and accounts pick one by signature.
package protocol

import (
	"sort"
	"sync"

	"github.com/zhubert/parley/internal/config"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/im"
)

// Factory creates a protocol instance for an account.
type Factory func(account config.Account) (im.Protocol, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes a protocol available under signature. Registering the same
// signature twice panics.
func Register(signature string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if factory == nil {
		panic("protocol: Register factory is nil")
	}
	if _, dup := factories[signature]; dup {
		panic("protocol: Register called twice for " + signature)
	}
	factories[signature] = factory
}

// New creates the protocol for an account.
func New(account config.Account) (im.Protocol, error) {
	mu.RLock()
	factory, ok := factories[account.Protocol]
	mu.RUnlock()

	if !ok {
		return nil, perrors.ProtocolUnknown(account.Protocol)
	}
	p, err := factory(account)
	if err != nil {
		return nil, perrors.ProtocolFailed(account.Protocol, err)
	}
	return p, nil
}

// Signatures returns the registered signatures in ascending order.
func Signatures() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(factories))
	for sig := range factories {
		out = append(out, sig)
	}
	sort.Strings(out)
	return out
}

// Registered reports whether a signature has a factory.
func Registered(signature string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[signature]
	return ok
}
