package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 購読者に渡すカートの状態
type CartSnapshot struct {
	Lines      []model.CartLine `json:"lines"`
	ItemsCount int64            `json:"items_count"`
	Total      decimal.Decimal  `json:"total"`
	IsOpen     bool             `json:"is_open"`
}

type CartListener func(CartSnapshot)

// CartStore はセッション1つ分のカート。
// 変更のたびにKVへ保存し、購読者へ通知する。
type CartStore struct {
	mu   sync.Mutex
	cart model.Cart

	// 一時的な失敗で復元できていない間は保存済みの内容を上書きしない
	pending             bool
	clearedWhilePending bool

	kv     repo.KVStore
	key    string
	logger *zap.Logger

	listeners    map[int]CartListener
	nextListener int
	seq          *notifySeq
}

// 配信待ちの通知
type cartNotice struct {
	ticket    uint64
	snap      CartSnapshot
	listeners []CartListener
}

// DI
func NewCartStore(kv repo.KVStore, key string, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{
		kv:        kv,
		key:       key,
		logger:    logger,
		listeners: map[int]CartListener{},
		seq:       newNotifySeq(),
	}
}

// AddToCart は同じ商品なら数量+1、無ければ数量1で末尾に追加。
func (s *CartStore) AddToCart(ctx context.Context, p model.Product) CartSnapshot {
	return s.mutate(ctx, func(lines []model.CartLine) []model.CartLine {
		next := make([]model.CartLine, 0, len(lines)+1)
		found := false
		for _, l := range lines {
			if l.Product.ID == p.ID {
				l.Quantity++
				found = true
			}
			next = append(next, l)
		}
		if !found {
			next = append(next, model.CartLine{Product: p, Quantity: 1})
		}
		return next
	})
}

// 無ければ何もしない
func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) CartSnapshot {
	return s.mutate(ctx, func(lines []model.CartLine) []model.CartLine {
		next := make([]model.CartLine, 0, len(lines))
		for _, l := range lines {
			if l.Product.ID != productID {
				next = append(next, l)
			}
		}
		return next
	})
}

// UpdateQuantity は数量をそのまま設定する。0以下は削除と同じ。
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int64) CartSnapshot {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	return s.mutate(ctx, func(lines []model.CartLine) []model.CartLine {
		next := make([]model.CartLine, len(lines))
		copy(next, lines)
		for i := range next {
			if next[i].Product.ID == productID {
				next[i].Quantity = quantity
			}
		}
		return next
	})
}

// ClearCart は明細を空にし、保存済みのスナップショットも消す。
func (s *CartStore) ClearCart(ctx context.Context) CartSnapshot {
	s.mu.Lock()
	s.cart.Lines = []model.CartLine{}
	if s.pending {
		s.clearedWhilePending = true
	} else if err := s.kv.Remove(ctx, s.key); err != nil {
		s.logger.Warn("cart remove failed", zap.String("key", s.key), zap.Error(err))
	}
	n := s.stageLocked()
	s.mu.Unlock()

	s.notify(n)
	return n.snap
}

func (s *CartStore) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *CartStore) CartItemsCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemsCount()
}

// Items は追加順のコピー
func (s *CartStore) Items() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.cart.Lines)
}

func (s *CartStore) Snapshot() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsOpen
}

// 開閉状態は保存しない
func (s *CartStore) SetOpen(open bool) CartSnapshot {
	s.mu.Lock()
	s.cart.IsOpen = open
	n := s.stageLocked()
	s.mu.Unlock()

	s.notify(n)
	return n.snap
}

// Subscribe は変更通知を登録し、解除関数を返す。
func (s *CartStore) Subscribe(l CartListener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Rehydrate は保存済みスナップショットを読み込み、各明細をカタログで引き直す。
// 残すのは数量だけ。壊れている場合は空カートになる。
// KVやカタログの一時的な失敗はエラーを返し、次に成功するまで保存済みの内容を上書きしない。
// その間に入れた明細は、成功時に保存済みの明細へ足し込む。
func (s *CartStore) Rehydrate(ctx context.Context, catalog repo.CatalogSource) (CartSnapshot, error) {
	loaded, err := s.loadLines(ctx, catalog)

	s.mu.Lock()
	if err != nil {
		s.pending = true
		n := s.stageLocked()
		s.mu.Unlock()

		s.notify(n)
		return n.snap, err
	}

	wasPending := s.pending
	switch {
	case wasPending && s.clearedWhilePending:
		loaded = copyLines(s.cart.Lines)
	case wasPending:
		loaded = mergeLines(loaded, s.cart.Lines)
	}
	s.pending = false
	s.clearedWhilePending = false
	s.cart.Lines = loaded
	if wasPending {
		s.persistLocked(ctx)
	}
	n := s.stageLocked()
	s.mu.Unlock()

	s.notify(n)
	return n.snap, nil
}

// Pending は復元がまだ成功していないか。
func (s *CartStore) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *CartStore) loadLines(ctx context.Context, catalog repo.CatalogSource) ([]model.CartLine, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartLine{}, nil
	}
	if err != nil {
		s.logger.Warn("cart load failed", zap.String("key", s.key), zap.Error(err))
		return nil, fmt.Errorf("cart load failed: %w", err)
	}

	stored, err := decodeStoredLines([]byte(raw))
	if err != nil {
		s.logger.Warn("cart snapshot corrupt", zap.String("key", s.key), zap.Error(err))
		return []model.CartLine{}, nil
	}

	lines := make([]model.CartLine, 0, len(stored))
	for _, sl := range stored {
		if sl.ID == "" || sl.Quantity <= 0 {
			continue
		}

		// 重複は最初の明細に数量を足す
		if i := (model.Cart{Lines: lines}).IndexOf(string(sl.ID)); i >= 0 {
			lines[i].Quantity += sl.Quantity
			continue
		}

		p, err := catalog.FindByID(ctx, string(sl.ID))
		if errors.Is(err, repo.ErrNotFound) {
			s.logger.Info("drop stale cart line", zap.String("product_id", string(sl.ID)))
			continue
		}
		if err != nil {
			s.logger.Warn("catalog lookup failed on rehydrate", zap.Error(err))
			return nil, fmt.Errorf("catalog lookup failed: %w", err)
		}
		lines = append(lines, model.CartLine{Product: p, Quantity: sl.Quantity})
	}
	return lines, nil
}

// mutate は明細スライスを丸ごと差し替えてから保存・通知する。
func (s *CartStore) mutate(ctx context.Context, fn func([]model.CartLine) []model.CartLine) CartSnapshot {
	s.mu.Lock()
	s.cart.Lines = fn(s.cart.Lines)
	s.persistLocked(ctx)
	n := s.stageLocked()
	s.mu.Unlock()

	s.notify(n)
	return n.snap
}

// 保存失敗はログだけ（メモリ上のカートが正）
func (s *CartStore) persistLocked(ctx context.Context) {
	if s.pending {
		return
	}
	b, err := encodeStoredLines(s.cart.Lines)
	if err != nil {
		s.logger.Warn("cart encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		s.logger.Warn("cart save failed", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *CartStore) snapshotLocked() CartSnapshot {
	return CartSnapshot{
		Lines:      copyLines(s.cart.Lines),
		ItemsCount: s.cart.ItemsCount(),
		Total:      s.cart.Total(),
		IsOpen:     s.cart.IsOpen,
	}
}

// ロック中に呼ぶ。通知の順番・内容・宛先をここで決める。
func (s *CartStore) stageLocked() cartNotice {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]CartListener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, s.listeners[id])
	}
	return cartNotice{ticket: s.seq.ticket(), snap: s.snapshotLocked(), listeners: ls}
}

// ロックの外で呼ぶ。変更した順に届く。
func (s *CartStore) notify(n cartNotice) {
	s.seq.deliver(n.ticket, func() {
		for _, l := range n.listeners {
			l(n.snap)
		}
	})
}

// mergeLines は extra の数量を base に足す。base に無い商品は末尾に追加。
func mergeLines(base, extra []model.CartLine) []model.CartLine {
	out := copyLines(base)
	for _, l := range extra {
		if i := (model.Cart{Lines: out}).IndexOf(l.Product.ID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out
}

func copyLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}

// =====================
// 保存形式
// =====================

// 保存する明細（画像は保存しない）
type storedLine struct {
	ID          model.FlexID    `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
}

func encodeStoredLines(lines []model.CartLine) ([]byte, error) {
	out := make([]storedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, storedLine{
			ID:          model.FlexID(l.Product.ID),
			Title:       l.Product.Title,
			Description: l.Product.Description,
			Price:       l.Product.Price,
			Category:    l.Product.Category,
			Quantity:    l.Quantity,
		})
	}
	return json.Marshal(out)
}

// 配列として読めなければエラー。要素単位で読めないものは捨てる。
func decodeStoredLines(b []byte) ([]storedLine, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, err
	}

	out := make([]storedLine, 0, len(raws))
	for _, r := range raws {
		var head struct {
			ID       model.FlexID `json:"id"`
			Quantity int64        `json:"quantity"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			continue
		}
		out = append(out, storedLine{ID: head.ID, Quantity: head.Quantity})
	}
	return out, nil
}
