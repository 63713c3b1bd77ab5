package evmabi

import (
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Registry maps selectors and event topics to the entries that produced
// them. Keys are lowercase hex without a prefix. A Registry is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	contracts map[string]*Contract
	entries   map[string]Entry
	logger    *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		contracts: make(map[string]*Contract),
		entries:   make(map[string]Entry),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers every named entry of c and records c under id. When two
// entries share an ID the later one wins. A nil contract is ignored.
func (r *Registry) Add(id string, c *Contract) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, e := range c.Entries() {
		if e.Name() == "" {
			continue
		}
		key := selectorKey(e.ID())
		if prev, ok := r.entries[key]; ok && prev.Signature() != e.Signature() {
			r.logger.Warn("selector collision",
				zap.String("key", key),
				zap.String("previous", prev.Signature()),
				zap.String("replacement", e.Signature()),
				zap.String("contract", id),
			)
		}
		r.entries[key] = e
		added++
	}
	r.contracts[id] = c

	r.logger.Debug("registered contract",
		zap.String("contract", id),
		zap.Int("entries", added),
	)
}

// AddJSON parses a JSON ABI document and registers it under id.
func (r *Registry) AddJSON(id string, abiJSON []byte) error {
	c, err := ParseABI(abiJSON)
	if err != nil {
		return err
	}
	r.Add(id, c)
	return nil
}

// AddAnonymousJSON registers a JSON ABI document under the 0x-prefixed
// Keccak-256 hash of its text and returns that id.
func (r *Registry) AddAnonymousJSON(abiJSON []byte) (string, error) {
	c, err := ParseABI(abiJSON)
	if err != nil {
		return "", err
	}
	id := hexutil.Encode(crypto.Keccak256(abiJSON))
	r.Add(id, c)
	return id, nil
}

// Lookup returns the entry registered under key. The key may carry a 0x
// prefix and use either case.
func (r *Registry) Lookup(key string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[normalizeKey(key)]
	return e, ok
}

func (r *Registry) lookupID(id []byte) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[selectorKey(id)]
	return e, ok
}

// Contract returns the contract registered under id.
func (r *Registry) Contract(id string) (*Contract, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[id]
	return c, ok
}

// Contracts returns a copy of the id to contract map.
func (r *Registry) Contracts() map[string]*Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Contract, len(r.contracts))
	for id, c := range r.contracts {
		out[id] = c
	}
	return out
}

// Selectors returns a copy of the key to entry map.
func (r *Registry) Selectors() map[string]Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Entry, len(r.entries))
	for k, e := range r.entries {
		out[k] = e
	}
	return out
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
