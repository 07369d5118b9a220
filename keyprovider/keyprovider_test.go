package keyprovider

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// testMnemonic is the canonical BIP39 test vector mnemonic (all-zero
// entropy), valid under its checksum.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveFromMnemonicRejectsInvalid(t *testing.T) {
	t.Parallel()
	_, err := DeriveFromMnemonic("not a real mnemonic at all", "")
	require.Error(t, err)
}

func TestDeriveFromMnemonicIsDeterministic(t *testing.T) {
	t.Parallel()

	signer1, err := DeriveFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	signer2, err := DeriveFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	require.Equal(t, signer1.Address(), signer2.Address())
}

func TestDeriveFromMnemonicPassphraseChangesKey(t *testing.T) {
	t.Parallel()

	noPass, err := DeriveFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	withPass, err := DeriveFromMnemonic(testMnemonic, "tiny bit of salt")
	require.NoError(t, err)

	require.NotEqual(t, noPass.Address(), withPass.Address())
}

func TestECDSASignerSignTxIsVerifiable(t *testing.T) {
	t.Parallel()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := NewECDSASigner(key)

	to := [20]byte{0xaa}
	tx := types.NewTransaction(0, to, big.NewInt(1), 21000, big.NewInt(1), nil)

	chainID := big.NewInt(1)
	signed, err := signer.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.NewEIP155Signer(chainID), signed)
	require.NoError(t, err)
	require.Equal(t, common.Address(signer.Address()), sender)
}
