package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/inventory"
	offeringRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/offering"
)

// memStore хранилище в памяти с построчными блокировками на время транзакции,
// повторяющее SELECT ... FOR UPDATE и откат изменений при ошибке
type memStore struct {
	mu        sync.Mutex
	bookings  map[int64]*domain.Booking
	offerings map[int64]*domain.Offering // по offer_id
	units     map[int64]*domain.InventoryUnit
	rowLocks  map[string]*sync.Mutex

	failMarkConfirmed bool
}

type txKey struct{}

type txState struct {
	held map[string]*sync.Mutex
	undo []func()
}

func newMemStore() *memStore {
	return &memStore{
		bookings:  make(map[int64]*domain.Booking),
		offerings: make(map[int64]*domain.Offering),
		units:     make(map[int64]*domain.InventoryUnit),
		rowLocks:  make(map[string]*sync.Mutex),
	}
}

// Do TransactionManager
func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := &txState{held: make(map[string]*sync.Mutex)}
	err := fn(context.WithValue(ctx, txKey{}, tx))

	if err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
	}
	for _, m := range tx.held {
		m.Unlock()
	}
	return err
}

func (s *memStore) lockRow(ctx context.Context, key string) {
	tx, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return
	}
	if _, held := tx.held[key]; held {
		return
	}

	s.mu.Lock()
	m, exists := s.rowLocks[key]
	if !exists {
		m = &sync.Mutex{}
		s.rowLocks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	tx.held[key] = m
}

func (s *memStore) addUndo(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.undo = append(tx.undo, fn)
	}
}

func (s *memStore) stock(unitID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units[unitID].Stock
}

func (s *memStore) booking(id int64) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.bookings[id]
}

// BookingRepository

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s.lockRow(ctx, fmt.Sprintf("booking:%d", id))

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) MarkConfirmed(ctx context.Context, id int64, ticket string) error {
	if s.failMarkConfirmed {
		return errors.New("connection reset")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	prevConfirmed, prevTicket := b.Confirmed, b.Ticket
	b.Confirmed = true
	b.Ticket = &ticket
	s.addUndo(ctx, func() {
		b.Confirmed = prevConfirmed
		b.Ticket = prevTicket
	})
	return nil
}

// OfferingRepository

func (s *memStore) GetByOfferID(_ context.Context, offerID int64) (*domain.Offering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offerings[offerID]
	if !ok {
		return nil, offeringRepo.ErrOfferNotFound
	}
	cp := *o
	return &cp, nil
}

// InventoryRepository

type unitsRepo struct{ s *memStore }

func (r unitsRepo) GetByID(ctx context.Context, id int64) (*domain.InventoryUnit, error) {
	r.s.lockRow(ctx, fmt.Sprintf("unit:%d", id))

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, inventoryRepo.ErrUnitNotFound
	}
	cp := *u
	return &cp, nil
}

func (r unitsRepo) GetRange(ctx context.Context, offerID int64, from, to time.Time) ([]*domain.InventoryUnit, error) {
	r.s.mu.Lock()
	ids := make([]*domain.InventoryUnit, 0)
	for _, u := range r.s.units {
		if u.OfferID == offerID && !u.Day.Before(from) && !u.Day.After(to) {
			ids = append(ids, u)
		}
	}
	r.s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool {
		if !ids[i].Day.Equal(ids[j].Day) {
			return ids[i].Day.Before(ids[j].Day)
		}
		return ids[i].ID < ids[j].ID
	})

	result := make([]*domain.InventoryUnit, 0, len(ids))
	for _, u := range ids {
		locked, err := r.GetByID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, locked)
	}
	return result, nil
}

func (r unitsRepo) DecrementStock(ctx context.Context, id int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok || u.Stock < quantity {
		return inventoryRepo.ErrInsufficientStock
	}
	u.Stock -= quantity
	r.s.addUndo(ctx, func() { u.Stock += quantity })
	return nil
}

type sequentialTickets struct{ n atomic.Int64 }

func (g *sequentialTickets) Generate() string {
	return fmt.Sprintf("TKT-%d", g.n.Add(1))
}

type notification struct {
	recipientID int64
	message     string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, recipientID int64, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{recipientID: recipientID, message: message})
	return n.err
}

type nopMetrics struct{}

func (nopMetrics) RecordBookingTransition(string, string) {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
