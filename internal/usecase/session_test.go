package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newSessionManager(kv *mapKV, catalog *CatalogMock, clock *fixedClock) *usecase.SessionManager {
	return usecase.NewSessionManager(usecase.SessionDeps{
		KV:        kv,
		Catalog:   catalog,
		Orders:    new(OrderGatewayMock),
		Validator: validator.NewCheckoutValidator(),
		Shipping:  usecase.DefaultShippingPolicy(),
		CartKey:   "bunaiCart",
		ToastTTL:  2 * time.Second,
		IdleTTL:   time.Hour,
		Scheduler: &manualScheduler{},
		Clock:     clock,
		IDGen:     &seqIDGen{},
	})
}

func TestSessionManager_GetCreatesOnce(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Now()}
	m := newSessionManager(newMapKV(), new(CatalogMock), clock)

	a := m.Get(ctx, "s1")
	b := m.Get(ctx, "s1")
	c := m.Get(ctx, "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "bunaiCart:s1", m.CartKey("s1"))
}

func TestSessionManager_RehydratesFromStore(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	require.NoError(t, kv.Set(ctx, "bunaiCart:s1", `[{"id":"1","quantity":2}]`))

	catalog := new(CatalogMock)
	catalog.On("FindByID", mock.Anything, "1").Return(product("1", 2499), nil).Once()
	m := newSessionManager(kv, catalog, &fixedClock{now: time.Now()})

	s := m.Get(ctx, "s1")
	assert.Equal(t, int64(2), s.Cart.CartItemsCount())

	// 2回目は復元しない
	m.Get(ctx, "s1")
	catalog.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestSessionManager_EvictIdle(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: start}
	kv := newMapKV()
	m := newSessionManager(kv, new(CatalogMock), clock)

	old := m.Get(ctx, "old")
	old.Cart.AddToCart(ctx, product("1", 100))

	clock.now = start.Add(50 * time.Minute)
	m.Get(ctx, "fresh")

	n := m.EvictIdle(start.Add(90 * time.Minute))
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, m.Len())

	// カートの保存内容は残る
	_, err := kv.Get(ctx, "bunaiCart:old")
	assert.NoError(t, err)
}

func TestSessionManager_CloseAll(t *testing.T) {
	ctx := context.Background()
	m := newSessionManager(newMapKV(), new(CatalogMock), &fixedClock{now: time.Now()})
	s := m.Get(ctx, "s1")
	s.Toasts.AddToast("hi", "")
	m.Get(ctx, "s2")

	m.Close("s2")
	assert.Equal(t, 1, m.Len())

	m.CloseAll()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, s.Toasts.Toasts())
}

func TestSessionManager_RetriesRehydrateAfterFailure(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	saved := `[{"id":"1","quantity":2}]`
	require.NoError(t, kv.Set(ctx, "bunaiCart:s1", saved))

	catalog := new(CatalogMock)
	catalog.On("FindByID", mock.Anything, "1").Return(model.Product{}, errors.New("backend down")).Once()
	m := newSessionManager(kv, catalog, &fixedClock{now: time.Now()})

	s := m.Get(ctx, "s1")
	assert.Equal(t, int64(0), s.Cart.CartItemsCount())
	assert.True(t, s.Cart.Pending())

	// 保存内容はそのまま
	raw, err := kv.Get(ctx, "bunaiCart:s1")
	require.NoError(t, err)
	assert.Equal(t, saved, raw)

	catalog.On("FindByID", mock.Anything, "1").Return(product("1", 2499), nil).Once()
	s = m.Get(ctx, "s1")
	assert.Equal(t, int64(2), s.Cart.CartItemsCount())
	assert.False(t, s.Cart.Pending())

	// 成功後は読み直さない
	m.Get(ctx, "s1")
	catalog.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestSessionManager_RehydrateIgnoresRequestCancel(t *testing.T) {
	kv := newMapKV()
	require.NoError(t, kv.Set(context.Background(), "bunaiCart:s1", `[{"id":"1","quantity":1}]`))

	catalog := new(CatalogMock)
	notCancelled := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	catalog.On("FindByID", notCancelled, "1").Return(product("1", 2499), nil).Once()
	m := newSessionManager(kv, catalog, &fixedClock{now: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := m.Get(ctx, "s1")
	assert.Equal(t, int64(1), s.Cart.CartItemsCount())
	catalog.AssertExpectations(t)
}

func TestSessionManager_LogsCartAndToastChanges(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	m := usecase.NewSessionManager(usecase.SessionDeps{
		KV:        newMapKV(),
		Catalog:   new(CatalogMock),
		Orders:    new(OrderGatewayMock),
		Validator: validator.NewCheckoutValidator(),
		Shipping:  usecase.DefaultShippingPolicy(),
		Scheduler: &manualScheduler{},
		Clock:     &fixedClock{now: time.Now()},
		IDGen:     &seqIDGen{},
		Logger:    zap.New(core),
	})

	s := m.Get(ctx, "s1")
	s.Cart.AddToCart(ctx, product("1", 100))
	s.Toasts.AddToast("hi", "")

	carts := logs.FilterMessage("cart changed").All()
	require.NotEmpty(t, carts)
	last := carts[len(carts)-1].ContextMap()
	assert.EqualValues(t, 1, last["items"])
	assert.Equal(t, "s1", last["session_id"])
	assert.Equal(t, 1, logs.FilterMessage("toasts changed").Len())

	// 破棄後は通知しない
	m.Close("s1")
	s.Cart.AddToCart(ctx, product("1", 100))
	assert.Len(t, logs.FilterMessage("cart changed").All(), len(carts))
}
