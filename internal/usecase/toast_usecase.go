package usecase

import (
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
)

// 通知が自動で消えるまでの既定時間
const DefaultToastTTL = 2 * time.Second

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 遅延実行の約束（テストでは手動で発火させる）
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// UUIDv7 は時刻順に並ぶので同時刻でも重複しない
type UUIDv7Generator struct{}

func (UUIDv7Generator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// time.AfterFunc を使う Scheduler
type TimeScheduler struct{}

func (TimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type ToastListener func([]model.Toast)

// ToastQueue はセッション1つ分の通知一覧。
type ToastQueue struct {
	mu     sync.Mutex
	toasts []model.Toast
	timers map[string]Timer
	closed bool

	ttl   time.Duration
	sched Scheduler
	clock Clock
	idGen IDGenerator

	listeners    map[int]ToastListener
	nextListener int
	seq          *notifySeq
}

// 配信待ちの通知
type toastNotice struct {
	ticket    uint64
	snap      []model.Toast
	listeners []ToastListener
}

// DI
func NewToastQueue(ttl time.Duration, sched Scheduler, clock Clock, idGen IDGenerator) *ToastQueue {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastQueue{
		timers:    map[string]Timer{},
		ttl:       ttl,
		sched:     sched,
		clock:     clock,
		idGen:     idGen,
		listeners: map[int]ToastListener{},
		seq:       newNotifySeq(),
	}
}

// AddToast は末尾に追加し、TTL後に自動で消す。
func (q *ToastQueue) AddToast(message string, kind model.ToastKind) model.Toast {
	if kind == "" {
		kind = model.ToastInfo
	}
	t := model.Toast{
		ID:        q.idGen.NewID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: q.clock.Now(),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return t
	}
	next := make([]model.Toast, 0, len(q.toasts)+1)
	next = append(next, q.toasts...)
	q.toasts = append(next, t)

	id := t.ID
	q.timers[id] = q.sched.AfterFunc(q.ttl, func() { q.RemoveToast(id) })
	n := q.stageLocked()
	q.mu.Unlock()

	q.notify(n)
	return t
}

// RemoveToast はIDで削除。無ければ何もしない。
func (q *ToastQueue) RemoveToast(id string) bool {
	q.mu.Lock()
	idx := -1
	for i, t := range q.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}

	next := make([]model.Toast, 0, len(q.toasts)-1)
	next = append(next, q.toasts[:idx]...)
	q.toasts = append(next, q.toasts[idx+1:]...)

	if tm, ok := q.timers[id]; ok {
		tm.Stop()
		delete(q.timers, id)
	}
	n := q.stageLocked()
	q.mu.Unlock()

	q.notify(n)
	return true
}

// 作成順
func (q *ToastQueue) Toasts() []model.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.copyLocked()
}

func (q *ToastQueue) Subscribe(l ToastListener) func() {
	q.mu.Lock()
	id := q.nextListener
	q.nextListener++
	q.listeners[id] = l
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.listeners, id)
			q.mu.Unlock()
		})
	}
}

// Close は保留中のタイマーを全部止める。
func (q *ToastQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, tm := range q.timers {
		tm.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
	q.closed = true
}

func (q *ToastQueue) copyLocked() []model.Toast {
	out := make([]model.Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// ロック中に呼ぶ。通知の順番・内容・宛先をここで決める。
func (q *ToastQueue) stageLocked() toastNotice {
	ids := make([]int, 0, len(q.listeners))
	for id := range q.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]ToastListener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, q.listeners[id])
	}
	return toastNotice{ticket: q.seq.ticket(), snap: q.copyLocked(), listeners: ls}
}

// ロックの外で呼ぶ。変更した順に届く。
func (q *ToastQueue) notify(n toastNotice) {
	q.seq.deliver(n.ticket, func() {
		for _, l := range n.listeners {
			l(n.snap)
		}
	})
}
