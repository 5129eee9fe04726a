package gateway

import (
	"encoding/hex"
	"sync"

	"github.com/google/uuid"
)

// idHexLen gives 56 bits of entropy per identifier. Collisions are not
// checked; at simulator scale the probability is negligible.
const idHexLen = 14

// Repository holds all gateway state. Everything lives in process memory
// and is lost on restart.
type Repository interface {
	NextID(prefix string) string
	SaveOrder(o Order)
	FindOrder(id string) (Order, bool)
	SavePaymentLink(l PaymentLink)
	FindPaymentLink(id string) (PaymentLink, bool)
}

type repository struct {
	mu     sync.RWMutex
	orders map[string]Order
	links  map[string]PaymentLink
}

func NewRepository() Repository {
	return &repository{
		orders: make(map[string]Order),
		links:  make(map[string]PaymentLink),
	}
}

// NextID returns "<prefix>_<hex>" derived from a random UUID.
func (r *repository) NextID(prefix string) string {
	id := uuid.New()
	return prefix + "_" + hex.EncodeToString(id[:])[:idHexLen]
}

// Records are stored and returned by value so no reader can observe a
// half-written entry.

func (r *repository) SaveOrder(o Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
}

func (r *repository) FindOrder(id string) (Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	return o, ok
}

func (r *repository) SavePaymentLink(l PaymentLink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[l.ID] = l
}

func (r *repository) FindPaymentLink(id string) (PaymentLink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.links[id]
	return l, ok
}
