package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/storefront-cart/internal/domains/cart/domain"
	cartports "github.com/Apurer/storefront-cart/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

const tracerName = "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/observability/service"

// Service decorates a cart store with tracing, logging, and metrics.
type Service struct {
	inner     cartports.Service
	sessionID string
	tracer    trace.Tracer
	logger    *slog.Logger
	metrics   serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// WithSessionID tags spans and logs with the owning browsing session.
func WithSessionID(id string) Option {
	return func(s *Service) {
		s.sessionID = id
	}
}

// New wraps a cart store.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Items(ctx context.Context) []cartdomain.Line {
	ctx, span := s.start(ctx, "CartService.Items")
	defer span.End()

	lines := s.inner.Items(ctx)
	span.SetAttributes(attribute.Int("cart.lines", len(lines)))
	return lines
}

func (s *Service) TotalItems(ctx context.Context) int {
	ctx, span := s.start(ctx, "CartService.TotalItems")
	defer span.End()

	total := s.inner.TotalItems(ctx)
	span.SetAttributes(attribute.Int("cart.total_items", total))
	return total
}

func (s *Service) TotalPrice(ctx context.Context) decimal.Decimal {
	ctx, span := s.start(ctx, "CartService.TotalPrice")
	defer span.End()

	total := s.inner.TotalPrice(ctx)
	span.SetAttributes(attribute.String("cart.total_price", total.StringFixed(2)))
	return total
}

func (s *Service) View(ctx context.Context) cartdomain.View {
	ctx, span := s.start(ctx, "CartService.View")
	defer span.End()

	view := s.inner.View(ctx)
	span.SetAttributes(
		attribute.Int("cart.lines", len(view.Lines)),
		attribute.Int("cart.total_items", view.TotalItems),
	)
	return view
}

func (s *Service) AddItem(ctx context.Context, product catalogdomain.Product, quantity int) cartdomain.AddOutcome {
	ctx, span := s.start(ctx, "CartService.AddItem",
		attribute.Int64("product.id", product.ID), attribute.Int("cart.requested", quantity))
	defer span.End()

	s.logInfo(ctx, "adding item to cart", slog.Int64("product.id", product.ID), slog.Int("quantity", quantity))
	outcome := s.inner.AddItem(ctx, product, quantity)
	span.SetAttributes(attribute.Int("cart.line_quantity", outcome.Quantity), attribute.Bool("cart.capped", outcome.Capped))
	s.metrics.recordAdded(ctx, outcome)
	if outcome.Capped {
		s.logInfo(ctx, "addition capped by stock",
			slog.Int64("product.id", product.ID), slog.Int("requested", outcome.Requested),
			slog.Int("quantity", outcome.Quantity), slog.Int("stock", product.Stock))
	}
	return outcome
}

func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	ctx, span := s.start(ctx, "CartService.UpdateQuantity",
		attribute.Int64("product.id", productID), attribute.Int("cart.quantity", quantity))
	defer span.End()

	s.logInfo(ctx, "updating cart quantity", slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	s.inner.UpdateQuantity(ctx, productID, quantity)
	if quantity <= 0 {
		s.metrics.recordRemoved(ctx)
	}
}

func (s *Service) RemoveItem(ctx context.Context, productID int64) {
	ctx, span := s.start(ctx, "CartService.RemoveItem", attribute.Int64("product.id", productID))
	defer span.End()

	s.logInfo(ctx, "removing item from cart", slog.Int64("product.id", productID))
	s.inner.RemoveItem(ctx, productID)
	s.metrics.recordRemoved(ctx)
}

func (s *Service) ClearCart(ctx context.Context) {
	ctx, span := s.start(ctx, "CartService.ClearCart")
	defer span.End()

	s.logInfo(ctx, "clearing cart")
	s.inner.ClearCart(ctx)
	s.metrics.recordCleared(ctx)
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.sessionID != "" {
		attrs = append(attrs, attribute.String("cart.session", s.sessionID))
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if s.sessionID != "" {
		attrs = append(attrs, slog.String("cart.session", s.sessionID))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type serviceMetrics struct {
	itemsAdded      metric.Int64Counter
	cappedAdditions metric.Int64Counter
	linesRemoved    metric.Int64Counter
	clears          metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Units requested by additions that kept a line"))
	capped, _ := m.Int64Counter("cart.service.capped_additions", metric.WithDescription("Additions limited by stock"))
	removed, _ := m.Int64Counter("cart.service.lines_removed", metric.WithDescription("Line removals requested"))
	clears, _ := m.Int64Counter("cart.service.clears", metric.WithDescription("Cart clears requested"))
	return serviceMetrics{itemsAdded: itemsAdded, cappedAdditions: capped, linesRemoved: removed, clears: clears}
}

func (m serviceMetrics) recordAdded(ctx context.Context, outcome cartdomain.AddOutcome) {
	if m.itemsAdded != nil && outcome.Quantity > 0 {
		m.itemsAdded.Add(ctx, int64(outcome.Requested))
	}
	if m.cappedAdditions != nil && outcome.Capped {
		m.cappedAdditions.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.linesRemoved != nil {
		m.linesRemoved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCleared(ctx context.Context) {
	if m.clears != nil {
		m.clears.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
