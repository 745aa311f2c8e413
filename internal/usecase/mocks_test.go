package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type CatalogMock struct{ mock.Mock }

func (m *CatalogMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *CatalogMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type OrderGatewayMock struct{ mock.Mock }

func (m *OrderGatewayMock) SubmitOrder(ctx context.Context, order model.Order) (model.OrderResult, error) {
	args := m.Called(ctx, order)
	res, _ := args.Get(0).(model.OrderResult)
	return res, args.Error(1)
}

type BlogRepoMock struct{ mock.Mock }

func (m *BlogRepoMock) ListPosts(ctx context.Context) ([]model.BlogPost, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.BlogPost)
	return items, args.Error(1)
}

func (m *BlogRepoMock) FindPost(ctx context.Context, id string) (model.BlogPost, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.BlogPost)
	return p, args.Error(1)
}

type GalleryRepoMock struct{ mock.Mock }

func (m *GalleryRepoMock) ListGallery(ctx context.Context) ([]model.GalleryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.GalleryItem)
	return items, args.Error(1)
}

type ContactGatewayMock struct{ mock.Mock }

func (m *ContactGatewayMock) SubmitContact(ctx context.Context, msg model.ContactMessage) (model.ContactResult, error) {
	args := m.Called(ctx, msg)
	res, _ := args.Get(0).(model.ContactResult)
	return res, args.Error(1)
}

// 保存に失敗するKV
type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, error) {
	return "", fmt.Errorf("storage unavailable")
}
func (failingKV) Set(ctx context.Context, key, value string) error {
	return fmt.Errorf("storage unavailable")
}
func (failingKV) Remove(ctx context.Context, key string) error {
	return fmt.Errorf("storage unavailable")
}

// テスト用の簡易KV
type mapKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapKV() *mapKV { return &mapKV{data: map[string]string{}} }

func (k *mapKV) Get(ctx context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (k *mapKV) Set(ctx context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}

func (k *mapKV) Remove(ctx context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

// =====================
// 時計・ID・タイマー
// =====================

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("toast-%d", g.n)
}

// 手動で発火させるScheduler
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) usecase.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Fire は止められていても関数を呼ぶ（遅れて発火した場合を再現）
func (s *manualScheduler) Fire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	t.f()
}

func (s *manualScheduler) Timer(i int) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[i]
}

// =====================
// Fixtures
// =====================

func product(id string, price int64) model.Product {
	return model.Product{
		ID:          id,
		Title:       "Product " + id,
		Description: "handmade " + id,
		Price:       decimal.NewFromInt(price),
		Category:    "crochet",
		Asset:       model.SvgAsset("<svg/>"),
	}
}

func newToastQueue() (*usecase.ToastQueue, *manualScheduler) {
	sched := &manualScheduler{}
	q := usecase.NewToastQueue(2*time.Second, sched,
		&fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}, &seqIDGen{})
	return q, sched
}
