package usecase_test

import (
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastQueue_AddDefaultsToInfo(t *testing.T) {
	q, sched := newToastQueue()

	toast := q.AddToast("hello", "")

	assert.Equal(t, model.ToastInfo, toast.Kind)
	assert.Equal(t, "toast-1", toast.ID)
	require.Len(t, q.Toasts(), 1)
	assert.Equal(t, 2*time.Second, sched.Timer(0).d)
}

func TestToastQueue_OrderAndAutoRemove(t *testing.T) {
	q, sched := newToastQueue()

	a := q.AddToast("first", model.ToastSuccess)
	b := q.AddToast("second", model.ToastError)

	toasts := q.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, a.ID, toasts[0].ID)
	assert.Equal(t, b.ID, toasts[1].ID)

	// TTL経過
	sched.Fire(0)
	toasts = q.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, b.ID, toasts[0].ID)
}

func TestToastQueue_ManualRemoveBeforeTimer(t *testing.T) {
	q, sched := newToastQueue()

	var notified int
	q.Subscribe(func([]model.Toast) { notified++ })

	toast := q.AddToast("bye", "")
	keep := q.AddToast("keep", "")
	assert.Equal(t, 2, notified)

	assert.True(t, q.RemoveToast(toast.ID))
	assert.True(t, sched.Timer(0).stopped)
	assert.Equal(t, 3, notified)

	// 遅れてタイマーが発火しても何も起きない
	sched.Fire(0)
	assert.Equal(t, 3, notified)

	toasts := q.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, keep.ID, toasts[0].ID)
}

func TestToastQueue_RemoveMissingIsNoop(t *testing.T) {
	q, _ := newToastQueue()
	q.AddToast("x", "")

	assert.False(t, q.RemoveToast("missing"))
	assert.Len(t, q.Toasts(), 1)
}

func TestToastQueue_CloseStopsTimers(t *testing.T) {
	q, sched := newToastQueue()
	q.AddToast("a", "")
	q.AddToast("b", "")

	q.Close()

	assert.True(t, sched.Timer(0).stopped)
	assert.True(t, sched.Timer(1).stopped)
	assert.Empty(t, q.Toasts())

	// 閉じた後の追加は表示されない
	q.AddToast("late", "")
	assert.Empty(t, q.Toasts())
}

func TestToastQueue_RealTimerRemoves(t *testing.T) {
	q := usecase.NewToastQueue(20*time.Millisecond, usecase.TimeScheduler{}, usecase.SystemClock{}, usecase.UUIDv7Generator{})
	defer q.Close()

	q.AddToast("quick", model.ToastWarning)
	require.Len(t, q.Toasts(), 1)

	assert.Eventually(t, func() bool { return len(q.Toasts()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := usecase.UUIDv7Generator{}
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := g.NewID()
		assert.False(t, seen[id])
		seen[id] = true

		u, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), u.Version())
	}
}

func TestToastQueue_ListenersSeeChangesInOrder(t *testing.T) {
	q, _ := newToastQueue()

	entered := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var seen []int
	first := true
	q.Subscribe(func(ts []model.Toast) {
		mu.Lock()
		block := first
		first = false
		mu.Unlock()

		if block {
			close(entered)
			<-release
		}

		mu.Lock()
		seen = append(seen, len(ts))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.AddToast("one", "")
	}()
	<-entered
	go func() {
		defer wg.Done()
		q.AddToast("two", "")
	}()

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, q.Toasts(), 2)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, seen)
}
