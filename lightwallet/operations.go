package lightwallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dirmansebastian/lightwallet/keyprovider"
	"github.com/dirmansebastian/lightwallet/rlpenc"
	"github.com/dirmansebastian/lightwallet/walletevent"
)

// GetWallet returns the id of the ether-holding wallet. It is always
// registry slot 0.
func (n *Node) GetWallet() WalletId { return 0 }

// GetWalletHoldingToken returns the existing wallet id for token if
// one has already been created, or creates, registers and announces
// one. Calling this twice with the same token is idempotent: it never
// creates a second wallet and only the first call emits
// WalletCreated.
func (n *Node) GetWalletHoldingToken(token common.Address) WalletId {
	n.mu.Lock()
	defer n.mu.Unlock()

	if w := n.wallets.findByToken(token, true); w != nil {
		return w.id
	}
	w := &Wallet{network: n.network, account: n.account, token: &token}
	id := n.wallets.insert(w)
	n.emitWalletLocked(walletevent.WalletCreated, id, walletevent.StatusSuccess, "")
	return id
}

// WalletSetDefaultGasLimit updates wallet's default gas limit and
// announces WalletDefaultGasLimitUpdated.
func (n *Node) WalletSetDefaultGasLimit(w WalletId, limit uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	wallet := n.wallets.lookup(w)
	if wallet == nil {
		n.emitWalletLocked(walletevent.WalletDefaultGasLimitUpdated, w, walletevent.StatusErrorUnknownWallet, "")
		return ErrUnknownWallet
	}
	wallet.defaultGasLimit = limit
	n.emitWalletLocked(walletevent.WalletDefaultGasLimitUpdated, w, walletevent.StatusSuccess, "")
	return nil
}

// WalletSetDefaultGasPrice updates wallet's default gas price and
// announces WalletDefaultGasPriceUpdated.
func (n *Node) WalletSetDefaultGasPrice(w WalletId, price *big.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	wallet := n.wallets.lookup(w)
	if wallet == nil {
		n.emitWalletLocked(walletevent.WalletDefaultGasPriceUpdated, w, walletevent.StatusErrorUnknownWallet, "")
		return ErrUnknownWallet
	}
	wallet.defaultGasPrice = new(big.Int).Set(price)
	n.emitWalletLocked(walletevent.WalletDefaultGasPriceUpdated, w, walletevent.StatusSuccess, "")
	return nil
}

// WalletCreateTransaction builds a transaction using wallet's default
// gas price/limit and no call data, inserts it into the node table,
// and announces TransactionCreated then TransactionAdded.
func (n *Node) WalletCreateTransaction(w WalletId, to common.Address, amount *big.Int) (TransactionId, error) {
	n.mu.Lock()
	wallet := n.wallets.lookup(w)
	var gasPrice *big.Int
	var gasLimit uint64
	if wallet != nil {
		gasPrice, gasLimit = wallet.defaultGasPrice, wallet.defaultGasLimit
	}
	n.mu.Unlock()
	return n.WalletCreateTransactionGeneric(w, to, amount, gasPrice, gasLimit, nil)
}

// WalletCreateTransactionGeneric is WalletCreateTransaction with
// explicit gas price, gas limit and call data.
func (n *Node) WalletCreateTransactionGeneric(w WalletId, to common.Address, amount, gasPrice *big.Int, gasLimit uint64, data []byte) (TransactionId, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	wallet := n.wallets.lookup(w)
	if wallet == nil {
		n.emitTransactionLocked(walletevent.TransactionCreated, NoId, walletevent.StatusErrorUnknownWallet, "")
		return NoId, ErrUnknownWallet
	}

	tx := rlpenc.NewTransaction(n.accountNonce, to, amount, gasLimit, gasPrice, data)
	t := &Transaction{walletId: w, tx: tx}
	tid := n.transactions.insert(t)
	wallet.addTransaction(tid)

	n.emitTransactionForWalletLocked(walletevent.TransactionCreated, w, tid, walletevent.StatusSuccess, "")
	n.emitTransactionForWalletLocked(walletevent.TransactionAdded, w, tid, walletevent.StatusSuccess, "")
	return tid, nil
}

// WalletSignTransaction signs tx in place with signer and announces
// TransactionSigned.
func (n *Node) WalletSignTransaction(w WalletId, tid TransactionId, signer keyprovider.Signer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.signTransactionLocked(w, tid, signer)
}

// WalletSignTransactionWithPaperKey derives a signer from a BIP39
// mnemonic and otherwise behaves exactly like WalletSignTransaction.
func (n *Node) WalletSignTransactionWithPaperKey(w WalletId, tid TransactionId, mnemonic, passphrase string) error {
	signer, err := keyprovider.DeriveFromMnemonic(mnemonic, passphrase)
	if err != nil {
		n.mu.Lock()
		n.emitTransactionForWalletLocked(walletevent.TransactionSigned, w, tid, walletevent.StatusErrorCallback, err.Error())
		n.mu.Unlock()
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.signTransactionLocked(w, tid, signer)
}

func (n *Node) signTransactionLocked(w WalletId, tid TransactionId, signer keyprovider.Signer) error {
	wallet := n.wallets.lookup(w)
	tx := n.transactions.lookup(tid)
	if wallet == nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionSigned, w, tid, walletevent.StatusErrorUnknownWallet, "")
		return ErrUnknownWallet
	}
	if tx == nil || !wallet.holds(tid) {
		n.emitTransactionForWalletLocked(walletevent.TransactionSigned, w, tid, walletevent.StatusErrorUnknownTransaction, "")
		return ErrUnknownTransaction
	}

	signed, err := signer.SignTx(tx.tx, n.chainID)
	if err != nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionSigned, w, tid, walletevent.StatusErrorCallback, err.Error())
		return err
	}
	tx.tx = signed
	tx.signed = true
	n.emitTransactionForWalletLocked(walletevent.TransactionSigned, w, tid, walletevent.StatusSuccess, "")
	return nil
}

// WalletSubmitTransaction RLP-encodes the signed transaction into a
// "0x"-prefixed raw hex string and hands it to the client's submit
// callback. The request is dispatched only; TransactionSubmitted is
// announced later, from the corresponding announce-back, the way
// every other asynchronous client request works.
func (n *Node) WalletSubmitTransaction(w WalletId, tid TransactionId) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	wallet := n.wallets.lookup(w)
	if wallet == nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionSubmitted, w, tid, walletevent.StatusErrorUnknownWallet, "")
		return ErrUnknownWallet
	}
	tx := n.transactions.lookup(tid)
	if tx == nil || !wallet.holds(tid) {
		n.emitTransactionForWalletLocked(walletevent.TransactionSubmitted, w, tid, walletevent.StatusErrorUnknownTransaction, "")
		return ErrUnknownTransaction
	}
	if !n.connectedLocked() {
		n.emitTransactionForWalletLocked(walletevent.TransactionSubmitted, w, tid, walletevent.StatusErrorNodeNotConnected, "")
		return ErrNotConnected
	}

	rawHex, err := rlpenc.EncodeRawHex(tx.tx)
	if err != nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionSubmitted, w, tid, walletevent.StatusErrorCallback, err.Error())
		return err
	}

	n.route(func() {
		id := n.nextRequestID()
		n.client.SubmitTransaction(n, w, tid, rawHex, id)
	})
	return nil
}

// WalletGetTransactions returns wallet's handled transaction ids,
// NoId-terminated.
func (n *Node) WalletGetTransactions(w WalletId) []TransactionId {
	n.mu.Lock()
	defer n.mu.Unlock()

	wallet := n.wallets.lookup(w)
	if wallet == nil {
		return []TransactionId{NoId}
	}
	return wallet.TransactionIds()
}

// UpdateTransactionGasEstimate computes the canonical amount/data hex
// and asks the client to estimate gas for tid. The effective ether
// amount is zero when the wallet holds a token, since token transfers
// move no ether value themselves.
func (n *Node) UpdateTransactionGasEstimate(w WalletId, tid TransactionId) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	wallet := n.wallets.lookup(w)
	if wallet == nil {
		n.emitTransactionForWalletLocked(walletevent.TransactionGasEstimateUpdated, w, tid, walletevent.StatusErrorUnknownWallet, "")
		return ErrUnknownWallet
	}
	tx := n.transactions.lookup(tid)
	if tx == nil || !wallet.holds(tid) {
		n.emitTransactionForWalletLocked(walletevent.TransactionGasEstimateUpdated, w, tid, walletevent.StatusErrorUnknownTransaction, "")
		return ErrUnknownTransaction
	}
	if !n.connectedLocked() {
		n.emitTransactionForWalletLocked(walletevent.TransactionGasEstimateUpdated, w, tid, walletevent.StatusErrorNodeNotConnected, "")
		return ErrNotConnected
	}

	amount := tx.Amount()
	if wallet.IsToken() {
		amount = big.NewInt(0)
	}
	amountHex := rlpenc.CanonicalAmountHex(amount)
	dataHex := rlpenc.CanonicalDataHex(tx.Data())

	n.route(func() {
		id := n.nextRequestID()
		n.client.EstimateGas(n, w, tid, tx.To(), amountHex, dataHex, id)
	})
	return nil
}

// DeleteTransaction removes tid from every wallet that holds it,
// announcing TransactionRemoved for each, then nulls the node's slot
// without compacting the table.
func (n *Node) DeleteTransaction(tid TransactionId) {
	n.mu.Lock()
	defer n.mu.Unlock()

	t := n.transactions.lookup(tid)
	if t == nil {
		return
	}
	for _, w := range n.wallets.slots {
		if w == nil {
			continue
		}
		if w.removeTransaction(tid) {
			n.emitTransactionForWalletLocked(walletevent.TransactionRemoved, w.id, tid, walletevent.StatusSuccess, "")
		}
	}
	t.walletId = NoId
	n.transactions.remove(tid)
}

// Lookup helpers — registry reads under the node lock.

func (n *Node) Wallet(id WalletId) *Wallet {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.wallets.lookup(id)
}

func (n *Node) Transaction(id TransactionId) *Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.transactions.lookup(id)
}

func (n *Node) Block(id BlockId) *Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.blocks.lookup(id)
}

func (n *Node) BlockByHash(hash [32]byte) *Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.blocks.findByHash(hash)
}
