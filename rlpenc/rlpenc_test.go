package rlpenc

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestCanonicalAmountHexNoLeadingZero(t *testing.T) {
	t.Parallel()

	cases := map[string]*big.Int{
		"0x0": big.NewInt(0),
		"0x1": big.NewInt(1),
		"0xa": big.NewInt(10),
	}
	for want, amount := range cases {
		require.Equal(t, want, CanonicalAmountHex(amount))
	}
}

func TestCanonicalAmountHexNilIsZero(t *testing.T) {
	t.Parallel()
	require.Equal(t, "0x0", CanonicalAmountHex(nil))
}

func TestCanonicalDataHex(t *testing.T) {
	t.Parallel()
	require.Equal(t, "0x", CanonicalDataHex(nil))
	require.Equal(t, "0xdeadbeef", CanonicalDataHex([]byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestEncodeRawHexRoundTripsThroughRLP(t *testing.T) {
	t.Parallel()

	to := common.HexToAddress("0x000000000000000000000000000000000000ff")
	tx := NewTransaction(0, to, big.NewInt(1), 21000, big.NewInt(1), nil)

	raw, err := EncodeRawHex(tx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "0x"))
	require.Greater(t, len(raw), len("0x"))

	rawBytes, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	require.NoError(t, err)
	var decoded types.Transaction
	require.NoError(t, rlp.DecodeBytes(rawBytes, &decoded))
	require.Equal(t, tx.Hash(), decoded.Hash())
}
