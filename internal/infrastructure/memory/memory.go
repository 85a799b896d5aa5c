// Package memory provides in-process implementations of the repository
// interfaces. They are safe for concurrent use and are intended for tests
// and local development (STORE_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserStore)(nil)
	_ repository.ProductRepository = (*ProductStore)(nil)
	_ repository.OrderRepository   = (*OrderStore)(nil)
)

// ids look like Mongo ObjectIDs so clients see the same shape from both drivers.
func newID() string { return primitive.NewObjectID().Hex() }

// UserStore ------------------------------------------------------------------

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]entity.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{byID: make(map[string]entity.User), byEmail: make(map[string]string)}
}

func (s *UserStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.Email]; exists {
		return repository.ErrDuplicate
	}
	if !u.Role.Valid() {
		u.Role = entity.RoleCustomer
	}
	now := time.Now().UTC()
	u.ID = newID()
	u.CreatedAt, u.UpdatedAt = now, now
	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *UserStore) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if prev.Email != u.Email {
		if _, taken := s.byEmail[u.Email]; taken {
			return repository.ErrDuplicate
		}
		delete(s.byEmail, prev.Email)
		s.byEmail[u.Email] = u.ID
	}
	u.CreatedAt = prev.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	s.byID[u.ID] = *u
	return nil
}

// ProductStore ---------------------------------------------------------------

type productRecord struct {
	seq int64
	p   entity.Product
}

type ProductStore struct {
	mu    sync.RWMutex
	seq   int64
	items map[string]productRecord
}

func NewProductStore() *ProductStore {
	return &ProductStore{items: make(map[string]productRecord)}
}

func (s *ProductStore) List(_ context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]productRecord, 0, len(s.items))
	for _, r := range s.items {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]entity.Product, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.p)
	}
	return out, nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := r.p
	return &p, nil
}

func (s *ProductStore) FindByIDs(_ context.Context, ids []string) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if r, ok := s.items[id]; ok {
			out = append(out, r.p)
		}
	}
	return out, nil
}

func (s *ProductStore) Create(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(p, time.Now().UTC())
	return nil
}

func (s *ProductStore) CreateMany(_ context.Context, ps []entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for i := range ps {
		s.insertLocked(&ps[i], now)
	}
	return nil
}

func (s *ProductStore) insertLocked(p *entity.Product, now time.Time) {
	s.seq++
	p.ID = newID()
	p.CreatedAt, p.UpdatedAt = now, now
	s.items[p.ID] = productRecord{seq: s.seq, p: *p}
}

func (s *ProductStore) Update(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.CreatedAt = r.p.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.p = *p
	s.items[p.ID] = r
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *ProductStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

// OrderStore -----------------------------------------------------------------

type orderRecord struct {
	seq int64
	o   entity.Order
}

type OrderStore struct {
	mu     sync.RWMutex
	seq    int64
	orders map[string]orderRecord
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]orderRecord)}
}

func (s *OrderStore) Create(_ context.Context, o *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now().UTC()
	o.ID = newID()
	o.CreatedAt, o.UpdatedAt = now, now
	// copy items so later mutation by the caller cannot reach the stored snapshot
	stored := *o
	stored.Items = append([]entity.OrderItem(nil), o.Items...)
	s.orders[o.ID] = orderRecord{seq: s.seq, o: stored}
	return nil
}

func (s *OrderStore) List(_ context.Context) ([]entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]orderRecord, 0, len(s.orders))
	for _, r := range s.orders {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]entity.Order, 0, len(recs))
	for _, r := range recs {
		o := r.o
		o.Items = append([]entity.OrderItem(nil), r.o.Items...)
		out = append(out, o)
	}
	return out, nil
}

func (s *OrderStore) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.o.Status = status
	r.o.UpdatedAt = time.Now().UTC()
	s.orders[id] = r
	o := r.o
	o.Items = append([]entity.OrderItem(nil), r.o.Items...)
	return &o, nil
}
