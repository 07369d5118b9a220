package lightwallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Transaction is the node's view of an Ethereum transaction: the
// underlying go-ethereum transaction object plus the node-level
// bookkeeping callers need (stable id, owning wallet, signed
// flag). A Transaction's slot in the node's table is nulled, never
// removed, once deleted from its wallet — outstanding TransactionIds
// must keep resolving to either the same object or nil.
type Transaction struct {
	id       TransactionId
	walletId WalletId

	tx          *types.Transaction
	signed      bool
	gasEstimate uint64
}

// Id returns the transaction's stable registry handle.
func (t *Transaction) Id() TransactionId { return t.id }

// WalletId returns the wallet that currently holds this transaction,
// or NoId if it is not (or no longer) associated with any wallet.
func (t *Transaction) WalletId() WalletId { return t.walletId }

// Signed reports whether the transaction is marked signed: set once
// walletSignTransaction(WithPaperKey) has run, and set from the start
// for every transaction inserted by AnnounceTransactions or
// AnnounceLogs.
func (t *Transaction) Signed() bool { return t.signed }

// Tx exposes the underlying go-ethereum transaction.
func (t *Transaction) Tx() *types.Transaction { return t.tx }

// To returns the transaction recipient, or the zero address for a
// contract-creation transaction.
func (t *Transaction) To() common.Address {
	if to := t.tx.To(); to != nil {
		return *to
	}
	return common.Address{}
}

// Amount returns the transaction's value field.
func (t *Transaction) Amount() *big.Int { return t.tx.Value() }

// Data returns the transaction's call data.
func (t *Transaction) Data() []byte { return t.tx.Data() }

// GasEstimate returns the last gas estimate reported by
// AnnounceGasEstimate, or 0 if none has arrived yet.
func (t *Transaction) GasEstimate() uint64 { return t.gasEstimate }
