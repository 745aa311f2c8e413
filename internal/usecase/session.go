package usecase

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// ブラウザセッション1つ分の状態
type Session struct {
	ID       string
	Cart     *CartStore
	Toasts   *ToastQueue
	Checkout *CheckoutFlow

	// 復元が成功するまで Get のたびに試す
	loadMu     sync.Mutex
	rehydrated bool

	unsubscribe []func()
	lastSeen    time.Time
}

// close は購読を外して通知のタイマーを止める。
func (s *Session) close() {
	for _, u := range s.unsubscribe {
		u()
	}
	s.Toasts.Close()
}

// SessionManagerの依存
type SessionDeps struct {
	KV        repo.KVStore
	Catalog   repo.CatalogSource
	Orders    repo.OrderGateway
	Validator CheckoutValidator
	Shipping  ShippingPolicy

	CartKey  string // 保存キーの接頭辞（bunaiCart）
	ToastTTL time.Duration
	IdleTTL  time.Duration

	Scheduler Scheduler
	Clock     Clock
	IDGen     IDGenerator
	Logger    *zap.Logger
}

// SessionManager はセッションIDごとに Cart/Toast/Checkout を持つ。
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	deps     SessionDeps
}

// DI
func NewSessionManager(deps SessionDeps) *SessionManager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TimeScheduler{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.IDGen == nil {
		deps.IDGen = UUIDv7Generator{}
	}
	if deps.CartKey == "" {
		deps.CartKey = "bunaiCart"
	}
	return &SessionManager{
		sessions: map[string]*Session{},
		deps:     deps,
	}
}

// CartKey はKVの保存キー
func (m *SessionManager) CartKey(sessionID string) string {
	return m.deps.CartKey + ":" + sessionID
}

// Get は無ければ作る。保存済みカートの復元は成功するまで毎回試す。
func (m *SessionManager) Get(ctx context.Context, id string) *Session {
	now := m.deps.Clock.Now()

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = m.newSession(id)
		m.sessions[id] = s
	}
	s.lastSeen = now
	m.mu.Unlock()

	m.rehydrate(ctx, s)
	return s
}

// 一時的な失敗なら次の Get でもう一度試す。
// リクエストが途中で切れても読み込みは最後まで行う。
func (m *SessionManager) rehydrate(ctx context.Context, s *Session) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.rehydrated {
		return
	}
	if _, err := s.Cart.Rehydrate(context.WithoutCancel(ctx), m.deps.Catalog); err != nil {
		m.deps.Logger.Warn("cart rehydrate failed, will retry",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		return
	}
	s.rehydrated = true
}

func (m *SessionManager) newSession(id string) *Session {
	d := m.deps
	logger := d.Logger.With(zap.String("session_id", id))

	cart := NewCartStore(d.KV, m.CartKey(id), logger)
	toasts := NewToastQueue(d.ToastTTL, d.Scheduler, d.Clock, d.IDGen)
	checkout := NewCheckoutFlow(cart, toasts, d.Orders, d.Validator, d.Shipping, logger)

	s := &Session{
		ID:       id,
		Cart:     cart,
		Toasts:   toasts,
		Checkout: checkout,
	}

	// 変更はログに残す（HTTP側はポーリングで読む）
	s.unsubscribe = []func(){
		cart.Subscribe(func(snap CartSnapshot) {
			logger.Debug("cart changed",
				zap.Int("lines", len(snap.Lines)),
				zap.Int64("items", snap.ItemsCount),
				zap.String("total", snap.Total.String()),
				zap.Bool("open", snap.IsOpen),
			)
		}),
		toasts.Subscribe(func(ts []model.Toast) {
			logger.Debug("toasts changed", zap.Int("count", len(ts)))
		}),
	}
	return s
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close はセッションを破棄する（カートの保存内容は残す）。
func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
	}
}

func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

// EvictIdle は IdleTTL より古いセッションを破棄し、件数を返す。
func (m *SessionManager) EvictIdle(now time.Time) int {
	if m.deps.IdleTTL <= 0 {
		return 0
	}

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.deps.IdleTTL {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	if len(idle) > 0 {
		m.deps.Logger.Info("evicted idle sessions", zap.Int("count", len(idle)))
	}
	return len(idle)
}
