package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danmuck/recordctl/internal/record"
)

var ErrAccountNotFound = errors.New("client: account not found")

// MemoryTransport keeps submitted payloads and serves account bytes from a
// map. It is safe for concurrent use.
type MemoryTransport struct {
	mu        sync.Mutex
	submitted [][]byte
	accounts  map[record.Pubkey][]byte
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{accounts: make(map[record.Pubkey][]byte)}
}

func (t *MemoryTransport) Submit(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	t.mu.Lock()
	t.submitted = append(t.submitted, buf)
	t.mu.Unlock()
	return nil
}

func (t *MemoryTransport) Fetch(ctx context.Context, account record.Pubkey) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	raw, ok := t.accounts[account]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	buf := make([]byte, len(raw))
	copy(buf, raw)
	return buf, nil
}

// SetAccount stores a copy of raw as the account's bytes.
func (t *MemoryTransport) SetAccount(account record.Pubkey, raw []byte) {
	buf := make([]byte, len(raw))
	copy(buf, raw)
	t.mu.Lock()
	t.accounts[account] = buf
	t.mu.Unlock()
}

// Submitted returns copies of every payload seen so far, in order.
func (t *MemoryTransport) Submitted() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.submitted))
	for i, p := range t.submitted {
		out[i] = append([]byte(nil), p...)
	}
	return out
}
