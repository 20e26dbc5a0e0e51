package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-cart/internal/domains/cart/domain"
	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

// Service is the cart store: it owns one cart, serializes mutations and writes every
// change through to the snapshot store before returning.
type Service struct {
	mu       sync.Mutex
	cart     *cartdomain.Cart
	storage  ports.SnapshotStore
	key      string
	notifier ports.Notifier
	logger   *slog.Logger
}

type Option func(*Service)

func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a store persisted under key and rehydrates it once from storage.
// A missing or unreadable snapshot yields an empty cart. A nil storage keeps the cart in memory only.
func NewService(ctx context.Context, storage ports.SnapshotStore, key string, opts ...Option) *Service {
	if key == "" {
		key = ports.SnapshotKey
	}
	s := &Service{
		storage:  storage,
		key:      key,
		notifier: ports.NoopNotifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.cart = s.restore(ctx)
	return s
}

func (s *Service) Items(_ context.Context) []cartdomain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Service) TotalItems(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

func (s *Service) TotalPrice(_ context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

func (s *Service) View(_ context.Context) cartdomain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.View()
}

// AddItem merges quantity units of product, capped at its stock, and notifies on success.
// Capping is reported through the outcome only.
func (s *Service) AddItem(ctx context.Context, product catalogdomain.Product, quantity int) cartdomain.AddOutcome {
	s.mu.Lock()
	outcome := s.cart.Add(product, quantity)
	if outcome.Changed {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if outcome.Quantity > 0 {
		s.notifier.Notify(ctx, ports.Notification{
			Kind:        ports.NotificationSuccess,
			Title:       "Added to cart",
			Message:     product.Name + " has been added to your cart.",
			ProductID:   product.ID,
			ProductName: product.Name,
		})
	}
	return outcome
}

func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.UpdateQuantity(productID, quantity) {
		s.persist(ctx)
	}
}

func (s *Service) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.Remove(productID) {
		s.persist(ctx)
	}
}

func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.Clear() {
		s.persist(ctx)
	}
}

// persist must run under s.mu. Failures leave the in-memory cart authoritative.
func (s *Service) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	data, err := EncodeSnapshot(s.cart.Lines())
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to encode cart snapshot",
			slog.String("cart.key", s.key), slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist cart snapshot",
			slog.String("cart.key", s.key), slog.String("error", err.Error()))
	}
}

func (s *Service) restore(ctx context.Context) *cartdomain.Cart {
	if s.storage == nil {
		return cartdomain.NewCart()
	}
	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ports.ErrSnapshotNotFound) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to load cart snapshot, starting empty",
				slog.String("cart.key", s.key), slog.String("error", err.Error()))
		}
		return cartdomain.NewCart()
	}
	lines, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "discarding unreadable cart snapshot",
			slog.String("cart.key", s.key), slog.String("error", err.Error()))
		return cartdomain.NewCart()
	}
	return cartdomain.Restore(lines)
}

var _ ports.Service = (*Service)(nil)
