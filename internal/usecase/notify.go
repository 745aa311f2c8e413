package usecase

import "sync"

// notifySeq は状態を変えた順に購読者へ届けるための番号札。
// 番号は状態のロック中に取り、deliver は自分の番まで待つ。
// 購読者の中から同じストアを変更してはいけない（自分の番を待ち続ける）。
type notifySeq struct {
	mu   sync.Mutex
	cond *sync.Cond
	next uint64
	done uint64
}

func newNotifySeq() *notifySeq {
	n := &notifySeq{}
	n.cond = sync.NewCond(&n.mu)
	return n
}

// 状態のロック中に呼ぶ
func (n *notifySeq) ticket() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	t := n.next
	n.next++
	return t
}

// deliver は前の番号の配信が終わってから fn を呼ぶ。取った番号は必ず deliver する。
func (n *notifySeq) deliver(t uint64, fn func()) {
	n.mu.Lock()
	for n.done != t {
		n.cond.Wait()
	}
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		n.done++
		n.cond.Broadcast()
		n.mu.Unlock()
	}()
	fn()
}
