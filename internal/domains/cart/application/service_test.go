package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/memory"
	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

type fakeSnapshotStore struct {
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{data: map[string][]byte{}}
}

func (f *fakeSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	data, ok := f.data[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return data, nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, key string, snapshot []byte) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[key] = snapshot
	return nil
}

type recordingNotifier struct {
	notifications []ports.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n ports.Notification) {
	r.notifications = append(r.notifications, n)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lamp(stock int) catalogdomain.Product {
	return catalogdomain.Product{ID: 1, Name: "Desk Lamp", Price: decimal.RequireFromString("19.99"), Stock: stock, ImageURL: "lamp.png"}
}

func TestAddItem_NotifiesWithProductName(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(context.Background(), newFakeSnapshotStore(), "", WithNotifier(notifier), WithLogger(quietLogger()))

	outcome := svc.AddItem(context.Background(), lamp(3), 5)
	assert.Equal(t, 3, outcome.Quantity)
	assert.True(t, outcome.Capped)

	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, ports.NotificationSuccess, notifier.notifications[0].Kind)
	assert.Equal(t, "Desk Lamp", notifier.notifications[0].ProductName)
	assert.Contains(t, notifier.notifications[0].Message, "Desk Lamp")
}

func TestAddItem_OutOfStockDoesNotNotifyOrPersist(t *testing.T) {
	store := newFakeSnapshotStore()
	notifier := &recordingNotifier{}
	svc := NewService(context.Background(), store, "", WithNotifier(notifier), WithLogger(quietLogger()))

	outcome := svc.AddItem(context.Background(), lamp(0), 1)
	assert.Zero(t, outcome.Quantity)
	assert.Empty(t, notifier.notifications)
	assert.Zero(t, store.saves)
	assert.Empty(t, svc.Items(context.Background()))
}

func TestMutations_WriteThrough(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshotStore()
	svc := NewService(ctx, store, ports.SnapshotKey, WithLogger(quietLogger()))

	svc.AddItem(ctx, lamp(5), 2)
	require.Equal(t, 1, store.saves)
	svc.UpdateQuantity(ctx, 1, 4)
	require.Equal(t, 2, store.saves)
	svc.UpdateQuantity(ctx, 1, 4)
	require.Equal(t, 2, store.saves, "unchanged quantity must not rewrite")
	svc.UpdateQuantity(ctx, 99, 1)
	require.Equal(t, 2, store.saves)
	svc.RemoveItem(ctx, 1)
	require.Equal(t, 3, store.saves)
	svc.RemoveItem(ctx, 1)
	require.Equal(t, 3, store.saves)
	svc.ClearCart(ctx)
	require.Equal(t, 3, store.saves)

	lines, err := DecodeSnapshot(store.data[ports.SnapshotKey])
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRoundTrip_FreshServiceRestoresLines(t *testing.T) {
	ctx := context.Background()
	store := cartmemory.NewSnapshotStore()
	first := NewService(ctx, store, ports.KeyFor("s1"), WithLogger(quietLogger()))
	first.AddItem(ctx, lamp(5), 2)
	first.AddItem(ctx, catalogdomain.Product{ID: 2, Name: "Novel", Price: decimal.RequireFromString("12.00"), Stock: 9}, 3)

	second := NewService(ctx, store, ports.KeyFor("s1"), WithLogger(quietLogger()))
	items := second.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "lamp.png", items[0].Product.ImageURL)
	assert.Equal(t, int64(2), items[1].Product.ID)
	assert.Equal(t, 3, items[1].Quantity)
	assert.Equal(t, 5, second.TotalItems(ctx))
	assert.Equal(t, "75.98", second.TotalPrice(ctx).StringFixed(2))

	other := NewService(ctx, store, ports.KeyFor("s2"), WithLogger(quietLogger()))
	assert.Empty(t, other.Items(ctx))
}

func TestNewService_CorruptSnapshotStartsEmpty(t *testing.T) {
	for name, payload := range map[string]string{
		"garbage":        "not json",
		"truncated":      `{"version":1,"items":[{"productId":1,`,
		"future version": `{"version":9,"items":[]}`,
		"empty":          "",
	} {
		t.Run(name, func(t *testing.T) {
			store := newFakeSnapshotStore()
			store.data[ports.SnapshotKey] = []byte(payload)
			svc := NewService(context.Background(), store, "", WithLogger(quietLogger()))
			assert.Empty(t, svc.Items(context.Background()))
		})
	}
}

func TestNewService_LoadFailureStartsEmpty(t *testing.T) {
	store := newFakeSnapshotStore()
	store.loadErr = errors.New("storage unavailable")
	svc := NewService(context.Background(), store, "", WithLogger(quietLogger()))
	assert.Empty(t, svc.Items(context.Background()))
}

func TestNewService_MigratesLegacySnapshot(t *testing.T) {
	store := newFakeSnapshotStore()
	store.data[ports.SnapshotKey] = []byte(`[{"product":{"id":1,"name":"Desk Lamp","price":19.99,"stock":2},"quantity":3}]`)

	svc := NewService(context.Background(), store, "", WithLogger(quietLogger()))
	items := svc.Items(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSaveFailure_InMemoryStateStaysAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshotStore()
	store.saveErr = errors.New("quota exceeded")
	svc := NewService(ctx, store, "", WithLogger(quietLogger()))

	svc.AddItem(ctx, lamp(5), 2)
	svc.AddItem(ctx, lamp(5), 1)
	assert.Equal(t, 3, svc.TotalItems(ctx))
	assert.Equal(t, 2, store.saves)
}

func TestNilStorage_KeepsCartInMemory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, nil, "")
	svc.AddItem(ctx, lamp(5), 2)
	assert.Equal(t, 2, svc.TotalItems(ctx))
}

func TestView_IsConsistent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, nil, "")
	svc.AddItem(ctx, lamp(5), 2)
	view := svc.View(ctx)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, int64(3998), view.TotalCents)
	assert.True(t, view.TotalPrice().Equal(svc.TotalPrice(ctx)))
}
