package lightwallet

import "github.com/ethereum/go-ethereum/common"

// walletRegistry, transactionRegistry, blockRegistry and
// listenerRegistry are the four append-mostly tables backing the
// Node's handle-indexed lookups. They are deliberately plain slices
// guarded by the Node's own mutex rather than a generic container:
// insertion order is the handle, and slots are nulled (never
// compacted) on deletion so that a previously issued id keeps
// resolving to either the same object or nil for the table's
// lifetime.

type walletRegistry struct {
	slots []*Wallet
}

func (r *walletRegistry) insert(w *Wallet) WalletId {
	id := WalletId(len(r.slots))
	w.id = id
	r.slots = append(r.slots, w)
	return id
}

func (r *walletRegistry) lookup(id WalletId) *Wallet {
	if id < 0 || int(id) >= len(r.slots) {
		return nil
	}
	return r.slots[id]
}

func (r *walletRegistry) findByToken(token common.Address, hasToken bool) *Wallet {
	for _, w := range r.slots {
		if w == nil {
			continue
		}
		if hasToken == w.IsToken() && (!hasToken || w.Token() == token) {
			return w
		}
	}
	return nil
}

type transactionRegistry struct {
	slots []*Transaction
}

func (r *transactionRegistry) insert(t *Transaction) TransactionId {
	id := TransactionId(len(r.slots))
	t.id = id
	r.slots = append(r.slots, t)
	return id
}

func (r *transactionRegistry) lookup(id TransactionId) *Transaction {
	if id < 0 || int(id) >= len(r.slots) {
		return nil
	}
	return r.slots[id]
}

func (r *transactionRegistry) remove(id TransactionId) {
	if id < 0 || int(id) >= len(r.slots) {
		return
	}
	r.slots[id] = nil
}

type blockRegistry struct {
	slots []*Block
}

func (r *blockRegistry) insert(b *Block) BlockId {
	id := BlockId(len(r.slots))
	b.id = id
	r.slots = append(r.slots, b)
	return id
}

func (r *blockRegistry) lookup(id BlockId) *Block {
	if id < 0 || int(id) >= len(r.slots) {
		return nil
	}
	return r.slots[id]
}

func (r *blockRegistry) findByHash(hash [32]byte) *Block {
	for _, b := range r.slots {
		if b == nil {
			continue
		}
		if b.Hash() == hash {
			return b
		}
	}
	return nil
}

type listenerRegistry struct {
	slots []*Listener
}

func (r *listenerRegistry) insert(l *Listener) ListenerId {
	id := ListenerId(len(r.slots))
	l.id = id
	r.slots = append(r.slots, l)
	return id
}

func (r *listenerRegistry) remove(id ListenerId) bool {
	if id < 0 || int(id) >= len(r.slots) {
		return false
	}
	if r.slots[id] == nil {
		return false
	}
	r.slots[id] = nil
	return true
}

func (r *listenerRegistry) each(fn func(*Listener)) {
	for _, l := range r.slots {
		if l != nil {
			fn(l)
		}
	}
}
