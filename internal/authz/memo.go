package authz

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// OwnerMemo remembers barberID -> owner email for the lifetime of a single
// request, so a list of appointments costs one lookup per barber rather than
// one per protected field. Only successful lookups are kept.
type OwnerMemo struct {
	mu     sync.RWMutex
	owners map[string]string
	group  singleflight.Group
}

func NewOwnerMemo() *OwnerMemo {
	return &OwnerMemo{owners: make(map[string]string)}
}

func (m *OwnerMemo) Lookup(barberID string, fetch func() (string, error)) (string, error) {
	m.mu.RLock()
	email, ok := m.owners[barberID]
	m.mu.RUnlock()
	if ok {
		return email, nil
	}

	v, err, _ := m.group.Do(barberID, func() (interface{}, error) {
		email, err := fetch()
		if err != nil {
			return "", err
		}
		m.mu.Lock()
		m.owners[barberID] = email
		m.mu.Unlock()
		return email, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

type memoKey struct{}

func WithOwnerMemo(ctx context.Context) context.Context {
	return context.WithValue(ctx, memoKey{}, NewOwnerMemo())
}

// OwnerMemoFrom returns the memo installed by WithOwnerMemo, or nil.
func OwnerMemoFrom(ctx context.Context) *OwnerMemo {
	m, _ := ctx.Value(memoKey{}).(*OwnerMemo)
	return m
}
