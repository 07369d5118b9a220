package mpt

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestVerifyReturnsErrorForEmptyProof(t *testing.T) {
	t.Parallel()

	d, err := NewDecoder(16)
	require.NoError(t, err)

	root := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111")
	_, err = d.Verify(root, []byte("missing-key"), nil)
	require.Error(t, err)
}

func TestVerifyCachesResultForRepeatedLookup(t *testing.T) {
	t.Parallel()

	d, err := NewDecoder(16)
	require.NoError(t, err)

	root := common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222")
	key := []byte("some-key")

	_, err1 := d.Verify(root, key, nil)
	_, err2 := d.Verify(root, key, nil)
	require.Equal(t, err1, err2)
	require.Equal(t, 1, d.cache.Len())
}

func TestVerifyDistinguishesDifferentKeysUnderSameRoot(t *testing.T) {
	t.Parallel()

	d, err := NewDecoder(16)
	require.NoError(t, err)

	root := common.HexToHash("0x3333333333333333333333333333333333333333333333333333333333333")
	_, _ = d.Verify(root, []byte("key-a"), nil)
	_, _ = d.Verify(root, []byte("key-b"), nil)
	require.Equal(t, 2, d.cache.Len())
}

func TestProofDBRoundTripsByHash(t *testing.T) {
	t.Parallel()

	node := ProofNode([]byte("an rlp-encoded trie node"))
	db := newProofDB([]ProofNode{node})

	hash := crypto.Keccak256(node)
	has, err := db.Has(hash)
	require.NoError(t, err)
	require.True(t, has)

	got, err := db.Get(hash)
	require.NoError(t, err)
	require.Equal(t, []byte(node), got)

	_, err = db.Get([]byte("not a real hash"))
	require.Error(t, err)
}

func TestNewDecoderRejectsNonPositiveCapacity(t *testing.T) {
	t.Parallel()
	_, err := NewDecoder(0)
	require.Error(t, err)
}
