package lightwallet

import "github.com/dirmansebastian/lightwallet/walletevent"

// Listener is a subscriber to wallet/transaction/block events. Each
// handler is optional; a nil handler is skipped silently when an
// event of its category is dispatched. Removing a listener zeroes its
// slot — the ListenerId (the slot index) is never reused or shifted.
type Listener struct {
	id ListenerId

	OnWallet      func(walletevent.Event)
	OnTransaction func(walletevent.Event)
	OnBlock       func(walletevent.Event)
}

// Id returns the listener's stable registry handle.
func (l *Listener) Id() ListenerId { return l.id }

func (l *Listener) dispatch(ev walletevent.Event) {
	if l == nil {
		return
	}
	switch ev.Category {
	case walletevent.CategoryWallet:
		if l.OnWallet != nil {
			l.OnWallet(ev)
		}
	case walletevent.CategoryTransaction:
		if l.OnTransaction != nil {
			l.OnTransaction(ev)
		}
	case walletevent.CategoryBlock:
		if l.OnBlock != nil {
			l.OnBlock(ev)
		}
	}
}
