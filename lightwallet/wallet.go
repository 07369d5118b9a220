package lightwallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet is a (account, network, optional token) view belonging to
// the Node's account. The ether-holding wallet is always registry
// slot 0; every other wallet is created on demand for a distinct
// ERC20-like token the first time it is referenced.
type Wallet struct {
	id      WalletId
	network string
	account common.Address
	token   *common.Address // nil for the native-coin wallet

	defaultGasLimit uint64
	defaultGasPrice *big.Int
	balance         *big.Int

	transactions []TransactionId
}

// IsToken reports whether this wallet tracks an ERC20-like token
// rather than the chain's native coin.
func (w *Wallet) IsToken() bool { return w.token != nil }

// Token returns the token contract address, or the zero address for
// the native-coin wallet.
func (w *Wallet) Token() common.Address {
	if w.token == nil {
		return common.Address{}
	}
	return *w.token
}

// Account is the address this wallet is a view over.
func (w *Wallet) Account() common.Address { return w.account }

// Balance returns the last balance reported by AnnounceBalance, or
// nil if none has arrived yet.
func (w *Wallet) Balance() *big.Int {
	if w.balance == nil {
		return nil
	}
	return new(big.Int).Set(w.balance)
}

// Id returns the wallet's stable registry handle.
func (w *Wallet) Id() WalletId { return w.id }

func (w *Wallet) holds(tid TransactionId) bool {
	for _, id := range w.transactions {
		if id == tid {
			return true
		}
	}
	return false
}

func (w *Wallet) addTransaction(tid TransactionId) {
	w.transactions = append(w.transactions, tid)
}

func (w *Wallet) removeTransaction(tid TransactionId) bool {
	for i, id := range w.transactions {
		if id == tid {
			w.transactions = append(w.transactions[:i], w.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// TransactionIds returns a copy of the wallet's handled transaction
// ids, terminated with NoId the way walletGetTransactions' C
// counterpart null-terminates its array.
func (w *Wallet) TransactionIds() []TransactionId {
	out := make([]TransactionId, len(w.transactions)+1)
	copy(out, w.transactions)
	out[len(w.transactions)] = NoId
	return out
}
