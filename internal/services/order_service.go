package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"prestige/internal/domain"
	"prestige/internal/store"
)

var ErrCartEmpty = errors.New("cart is empty")

// ordersKept bounds the stored history per client.
const ordersKept = 50

type OrderService struct {
	now func() time.Time
}

func NewOrderService() *OrderService {
	return &OrderService{now: time.Now}
}

// Place records the cart as an order, with totals rounded to the cent, and clears it.
// Nothing is charged or shipped.
// If the order cannot be stored the cart is left untouched.
func (s *OrderService) Place(ctx context.Context, st *store.Store, cart *Cart, contact domain.Contact) (domain.Order, error) {
	if cart.IsEmpty() {
		return domain.Order{}, ErrCartEmpty
	}
	o := domain.Order{
		ID:       uuid.NewString(),
		Items:    cart.Items(),
		Totals:   cart.Totals().Rounded(),
		Contact:  contact,
		PlacedAt: s.now().UTC(),
	}
	history := append([]domain.Order{o}, s.History(ctx, st)...)
	if len(history) > ordersKept {
		history = history[:ordersKept]
	}
	if err := store.Save(ctx, st, store.OrdersKey, history); err != nil {
		return domain.Order{}, pkgerrors.Wrap(err, "persist order")
	}
	if _, err := cart.Clear(ctx); err != nil {
		return o, err
	}
	return o, nil
}

// History is newest first.
func (s *OrderService) History(ctx context.Context, st *store.Store) []domain.Order {
	orders := store.Load(ctx, st, store.OrdersKey, []domain.Order{})
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}
