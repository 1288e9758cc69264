package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

type fakeLedgerStore struct {
	mu        sync.Mutex
	txns      []core.Transaction
	insertErr error
}

func (f *fakeLedgerStore) Insert(_ context.Context, t core.Transaction) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return core.Transaction{}, f.insertErr
	}
	f.txns = append(f.txns, t)
	return t, nil
}

func (f *fakeLedgerStore) FindByOwner(_ context.Context, ownerID string, from, to time.Time) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Transaction
	for _, t := range f.txns {
		if t.OwnerID != ownerID {
			continue
		}
		if !from.IsZero() && t.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && t.OccurredAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeLedgerStore) FindByID(_ context.Context, id string) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (f *fakeLedgerStore) DeleteByID(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.txns {
		if t.ID == id && t.OwnerID == ownerID {
			f.txns = append(f.txns[:i], f.txns[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

type fakeTemplateStore struct {
	mu        sync.Mutex
	templates map[string]core.RecurringTemplate
	failCAS   bool
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{templates: make(map[string]core.RecurringTemplate)}
}

func (f *fakeTemplateStore) Create(_ context.Context, rt core.RecurringTemplate) (core.RecurringTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[rt.ID] = rt
	return rt, nil
}

func (f *fakeTemplateStore) FindActiveByOwner(_ context.Context, ownerID string) ([]core.RecurringTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.RecurringTemplate
	for _, rt := range f.templates {
		if rt.OwnerID == ownerID && rt.Active {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) ActiveOwners(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	var owners []string
	for _, rt := range f.templates {
		if rt.Active && !seen[rt.OwnerID] {
			seen[rt.OwnerID] = true
			owners = append(owners, rt.OwnerID)
		}
	}
	return owners, nil
}

func (f *fakeTemplateStore) AdvanceWatermark(_ context.Context, id string, expected, next time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCAS {
		return false, nil
	}
	rt, ok := f.templates[id]
	if !ok || !rt.Active || !rt.LastGenerated.Equal(expected) {
		return false, nil
	}
	rt.LastGenerated = next
	f.templates[id] = rt
	return true, nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []core.Notification
	createErr     error
}

func (f *fakeNotificationStore) Create(_ context.Context, n core.Notification) (core.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return core.Notification{}, f.createErr
	}
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeNotificationStore) FindByOwner(_ context.Context, ownerID string) ([]core.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Notification
	for _, n := range f.notifications {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].OwnerID == ownerID {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) DeleteByOwner(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.OwnerID != ownerID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

type fakeAlertPublisher struct {
	mu         sync.Mutex
	published  []core.Notification
	publishErr error
}

func (f *fakeAlertPublisher) PublishAlert(_ context.Context, n core.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, n)
	return nil
}
