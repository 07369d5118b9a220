package lightwallet

import "time"

// runWorker is the Node's single polling goroutine. It publishes
// Connected as its first action, then loops: refresh, sleep, refresh,
// ... until Disconnect flips the state to Disconnecting, which the
// loop observes at the top and bottom of each cycle before exiting
// and publishing Disconnected. There is no hard preemption: an
// in-flight ClientPort call completes naturally, and any requestId it
// was issued is implicitly orphaned.
func (n *Node) runWorker() {
	n.mu.Lock()
	if n.state != Disconnecting {
		n.state = Connected
	}
	n.mu.Unlock()

	for {
		n.mu.Lock()
		if n.state == Disconnecting {
			n.mu.Unlock()
			break
		}

		n.requestBlockNumber()
		n.requestNonce()
		n.requestTransactionHistory()
		n.requestTransferLogs()
		n.requestWalletBalances()

		disconnecting := n.state == Disconnecting
		n.mu.Unlock()

		if disconnecting {
			break
		}
		time.Sleep(PollInterval)

		n.mu.Lock()
		stop := n.state == Disconnecting
		n.mu.Unlock()
		if stop {
			break
		}
	}

	n.mu.Lock()
	n.state = Disconnected
	n.workerRun = false
	orphaned := n.outstanding.Cardinality()
	n.mu.Unlock()
	n.log.Debug("lightwallet: worker stopped", "orphaned", orphaned)
}

// route performs type-based dispatch of a refresh request. TypeLes
// currently falls through to TypeJsonRpc; TypeNone is
// a no-op. Callers must hold n.mu.
func (n *Node) route(fn func()) {
	switch n.typ {
	case TypeJsonRpc, TypeLes:
		fn()
	case TypeNone:
		// no-op
	}
}

// connectedLocked reports whether the state precondition for issuing
// a refresh request holds. Callers must hold n.mu. Every request
// helper re-checks this so that announce-back paths re-entering the
// Node after Disconnecting silently drop work instead of issuing
// stale requests.
func (n *Node) connectedLocked() bool {
	return n.state == Connected
}

// requestBlockNumber issues a block-number refresh. Callers must hold n.mu.
func (n *Node) requestBlockNumber() {
	if !n.connectedLocked() {
		return
	}
	n.route(func() {
		id := n.nextRequestID()
		n.client.GetBlockNumber(n, id)
	})
}

// requestNonce issues an account-nonce refresh. Callers must hold n.mu.
func (n *Node) requestNonce() {
	if !n.connectedLocked() {
		return
	}
	n.route(func() {
		id := n.nextRequestID()
		n.client.GetNonce(n, n.account, id)
	})
}

// requestTransactionHistory asks for the full transaction history of
// the account's primary address. Callers must hold n.mu.
func (n *Node) requestTransactionHistory() {
	if !n.connectedLocked() {
		return
	}
	n.route(func() {
		id := n.nextRequestID()
		n.client.GetTransactions(n, n.account, id)
	})
}

// requestTransferLogs asks for the full ERC20 Transfer-log history
// for the account's primary address, encoded in both the `from` and
// `to` topic positions against a wildcard contract. Callers must hold n.mu.
func (n *Node) requestTransferLogs() {
	if !n.connectedLocked() {
		return
	}
	n.route(func() {
		addrTopic := AddressTopic(n.account)
		id := n.nextRequestID()
		n.client.GetLogs(n, nil, addrTopic, erc20TransferTopic, id)
	})
}

// requestWalletBalances asks for the balance of every known wallet,
// in registry order. Callers must hold n.mu.
func (n *Node) requestWalletBalances() {
	if !n.connectedLocked() {
		return
	}
	n.route(func() {
		for _, w := range n.wallets.slots {
			if w == nil {
				continue
			}
			id := n.nextRequestID()
			n.client.GetBalance(n, w.id, w.account, id)
		}
	})
}
