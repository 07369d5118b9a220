package lightwallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/dirmansebastian/lightwallet/rlpenc"
	"github.com/dirmansebastian/lightwallet/walletevent"
)

// rlpSyntheticTransfer builds a zero-nonce, zero-gas placeholder
// transaction used only to carry a decoded ERC20 Transfer log's
// recipient and value into the node's transaction table. It is never
// signed or submitted.
func rlpSyntheticTransfer(to common.Address, value *big.Int) *types.Transaction {
	return rlpenc.NewTransaction(0, to, value, 0, big.NewInt(0), nil)
}

// Announce-back entry points. These are the inverse of ClientPort:
// invoked by the client (from its own goroutines) to feed results of
// a previously dispatched request back into the Node. Every one
// mutates registries under n.mu and is therefore thread-safe to call
// concurrently with the polling worker, with other announce-backs, or
// with any public Node method.

// AnnounceBlockNumber records a refreshed chain head height.
func (n *Node) AnnounceBlockNumber(requestID uint64, blockNumber uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)
	n.blockHeight = blockNumber
}

// AnnounceNonce records a refreshed account nonce.
func (n *Node) AnnounceNonce(requestID uint64, nonce uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)
	n.accountNonce = nonce
}

// AnnounceBalance records wallet's refreshed balance and announces
// WalletBalanceUpdated. callErr, if non-nil, is reported as a
// StatusErrorCallback event instead of mutating the balance.
func (n *Node) AnnounceBalance(requestID uint64, wallet WalletId, balance *big.Int, callErr error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)

	w := n.wallets.lookup(wallet)
	if w == nil {
		return // orphaned: wallet no longer exists (it always does, but guard for safety)
	}
	if callErr != nil {
		n.emitWalletLocked(walletevent.WalletBalanceUpdated, wallet, walletevent.StatusErrorCallback, callErr.Error())
		return
	}
	w.balance = new(big.Int).Set(balance)
	n.emitWalletLocked(walletevent.WalletBalanceUpdated, wallet, walletevent.StatusSuccess, "")
}

// AnnounceGasEstimate records tid's refreshed gas estimate and
// announces TransactionGasEstimateUpdated.
func (n *Node) AnnounceGasEstimate(requestID uint64, wallet WalletId, tid TransactionId, gas uint64, callErr error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)

	tx := n.transactions.lookup(tid)
	if tx == nil {
		return
	}
	if callErr != nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionGasEstimateUpdated, wallet, tid, walletevent.StatusErrorCallback, callErr.Error())
		return
	}
	tx.gasEstimate = gas
	n.emitTransactionForWalletLocked(walletevent.TransactionGasEstimateUpdated, wallet, tid, walletevent.StatusSuccess, "")
}

// AnnounceSubmitted reports the outcome of a previously dispatched
// SubmitTransaction call and announces TransactionSubmitted.
func (n *Node) AnnounceSubmitted(requestID uint64, wallet WalletId, tid TransactionId, callErr error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)

	if callErr != nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionSubmitted, wallet, tid, walletevent.StatusErrorCallback, callErr.Error())
		return
	}
	n.emitTransactionForWalletLocked(walletevent.TransactionSubmitted, wallet, tid, walletevent.StatusSuccess, "")
}

// AnnounceTransactionIncluded reports that tid was mined into a block
// and announces TransactionIncluded.
func (n *Node) AnnounceTransactionIncluded(wallet WalletId, tid TransactionId, blockNumber uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emitTransactionForWalletLocked(walletevent.TransactionIncluded, wallet, tid, walletevent.StatusSuccess, "")
}

// AnnounceTransactionErrored reports that tid failed on-chain (e.g.
// reverted) and announces TransactionErrored.
func (n *Node) AnnounceTransactionErrored(wallet WalletId, tid TransactionId, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emitTransactionForWalletLocked(walletevent.TransactionErrored, wallet, tid, walletevent.StatusErrorCallback, description)
}

// AnnounceBlock adds a newly learned block header to the registry and
// announces BlockCreated.
func (n *Node) AnnounceBlock(header *types.Header) BlockId {
	n.mu.Lock()
	defer n.mu.Unlock()

	hash := header.Hash()
	if existing := n.blocks.findByHash(hash); existing != nil {
		return existing.id
	}
	id := n.blocks.insert(&Block{header: header})
	n.emitBlockLocked(walletevent.BlockCreated, id, walletevent.StatusSuccess, "")
	return id
}

// AnnounceTransactions folds a per-address transaction history
// refresh into the node's catalog: every transaction not already
// known (by hash) is inserted and associated with the ether-holding
// wallet, announcing TransactionAdded for each new one. Transactions
// already present are left untouched.
func (n *Node) AnnounceTransactions(requestID uint64, txs []*types.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)

	etherWallet := n.wallets.lookup(0)
	for _, tx := range txs {
		if n.findTransactionByHashLocked(tx.Hash()) != nil {
			continue
		}
		tid := n.transactions.insert(&Transaction{walletId: 0, tx: tx, signed: true})
		if etherWallet != nil {
			etherWallet.addTransaction(tid)
		}
		n.emitTransactionForWalletLocked(walletevent.TransactionAdded, 0, tid, walletevent.StatusSuccess, "")
	}
}

func (n *Node) findTransactionByHashLocked(hash common.Hash) *Transaction {
	for _, t := range n.transactions.slots {
		if t == nil || t.tx == nil {
			continue
		}
		if t.tx.Hash() == hash {
			return t
		}
	}
	return nil
}

// AnnounceLogs folds a batch of ERC20 Transfer logs into the node's
// catalog. For each log, the token's wallet is created on demand
// (getWalletHoldingToken), a synthetic transaction recording the
// transfer's recipient/value is inserted, and TransactionAdded is
// announced.
func (n *Node) AnnounceLogs(requestID uint64, logs []types.Log) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outstanding.Remove(requestID)

	for _, lg := range logs {
		if len(lg.Topics) < 3 || lg.Topics[0] != erc20TransferTopic {
			continue
		}
		to := common.BytesToAddress(lg.Topics[2].Bytes())
		value := new(big.Int).SetBytes(lg.Data)

		w := n.wallets.findByToken(lg.Address, true)
		if w == nil {
			wallet := &Wallet{network: n.network, account: n.account, token: &lg.Address}
			wid := n.wallets.insert(wallet)
			n.emitWalletLocked(walletevent.WalletCreated, wid, walletevent.StatusSuccess, "")
			w = wallet
		}

		tx := rlpSyntheticTransfer(to, value)
		tid := n.transactions.insert(&Transaction{walletId: w.id, tx: tx, signed: true})
		w.addTransaction(tid)
		n.emitTransactionForWalletLocked(walletevent.TransactionAdded, w.id, tid, walletevent.StatusSuccess, "")
	}
}
