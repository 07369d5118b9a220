package lightwallet

import "github.com/dirmansebastian/lightwallet/walletevent"

// postLocked posts ev to the event bus. It may be called while n.mu
// is held: the Bus's dispatcher runs on its own goroutine and never
// acquires n.mu, so posting under the node lock cannot deadlock and
// listener callbacks never observe the lock held. This keeps the
// Node's own mutex non-reentrant without needing a recursive lock.
func (n *Node) postLocked(ev walletevent.Event) {
	n.bus.Post(ev)
}

func (n *Node) emitWalletLocked(code walletevent.Code, w WalletId, status walletevent.Status, desc string) {
	n.postLocked(walletevent.Event{
		Category:      walletevent.CategoryWallet,
		Code:          code,
		Status:        status,
		WalletId:      int(w),
		TransactionId: NoId,
		BlockId:       NoId,
		Description:   desc,
	})
}

func (n *Node) emitTransactionLocked(code walletevent.Code, tid TransactionId, status walletevent.Status, desc string) {
	n.emitTransactionForWalletLocked(code, NoId, tid, status, desc)
}

func (n *Node) emitTransactionForWalletLocked(code walletevent.Code, w WalletId, tid TransactionId, status walletevent.Status, desc string) {
	n.postLocked(walletevent.Event{
		Category:      walletevent.CategoryTransaction,
		Code:          code,
		Status:        status,
		WalletId:      int(w),
		TransactionId: int(tid),
		BlockId:       NoId,
		Description:   desc,
	})
}

func (n *Node) emitBlockLocked(code walletevent.Code, b BlockId, status walletevent.Status, desc string) {
	n.postLocked(walletevent.Event{
		Category:      walletevent.CategoryBlock,
		Code:          code,
		Status:        status,
		WalletId:      NoId,
		TransactionId: NoId,
		BlockId:       int(b),
		Description:   desc,
	})
}
