// Package rlpenc gives the "RLP encoding/decoding of Ethereum
// primitives" collaborator — explicitly out of scope for the Light
// Node core — one concrete, real body: it builds legacy Ethereum
// transactions and RLP-encodes them the way walletSubmitTransaction's
// raw hex payload is produced.
package rlpenc

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// NewTransaction builds an unsigned legacy transaction with the given
// fields. A nil data slice is treated as an empty call payload.
func NewTransaction(nonce uint64, to common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *types.Transaction {
	return types.NewTransaction(nonce, to, amount, gasLimit, gasPrice, data)
}

// EncodeRawHex RLP-encodes a signed transaction and hex-prefixes the
// result with "0x", the exact wire shape walletSubmitTransaction hands
// to ClientPort.SubmitTransaction.
func EncodeRawHex(tx *types.Transaction) (string, error) {
	raw, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(raw), nil
}

// CanonicalAmountHex formats a wei amount as "0x"-prefixed hex with no
// redundant leading zero ("0x0" for zero, never "0x00"). uint256.Hex
// already produces this shape, which is why it is used here instead
// of big.Int plus manual string trimming.
func CanonicalAmountHex(amount *big.Int) string {
	if amount == nil {
		amount = big.NewInt(0)
	}
	u, overflow := uint256.FromBig(amount)
	if overflow {
		// amount out of uint256 range cannot occur for wei values in
		// practice; fall back to the big.Int's own hex text rather
		// than silently truncating.
		return "0x" + amount.Text(16)
	}
	return u.Hex()
}

// CanonicalDataHex prefixes data with "0x" without further alteration:
// call data crosses the client boundary raw, only amounts are
// canonicalized.
func CanonicalDataHex(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}
