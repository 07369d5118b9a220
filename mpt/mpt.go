// Package mpt implements a real Merkle-Patricia-Trie proof decoder:
// it verifies a proof against a trie root using
// github.com/ethereum/go-ethereum/trie's own verifier, and caches
// verified (root, key) pairs with a bounded LRU so repeated proof
// checks against the same chain state (the common case while polling
// a handful of wallets every cycle) do not re-walk the trie.
package mpt

import (
	"errors"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/trie"
	lru "github.com/hashicorp/golang-lru"
)

func crypto256(data []byte) []byte {
	return crypto.Keccak256(data)
}

// ErrNotFound is returned when a proof is well-formed but does not
// contain the requested key under the claimed root.
var ErrNotFound = errors.New("mpt: key not present under root")

// ProofNode is one RLP-encoded trie node along a Merkle-Patricia
// proof path, keyed by its own hash the way a light client collects
// them off the wire (eth_getProof's accountProof/storageProof
// entries).
type ProofNode []byte

// proofDB adapts a flat slice of proof nodes to the
// ethdb.KeyValueReader interface trie.VerifyProof expects: each node
// is addressable by its own Keccak256 hash.
type proofDB struct {
	nodes map[string][]byte
}

func newProofDB(nodes []ProofNode) *proofDB {
	db := &proofDB{nodes: make(map[string][]byte, len(nodes))}
	for _, n := range nodes {
		db.nodes[string(crypto256(n))] = n
	}
	return db
}

func (db *proofDB) Has(key []byte) (bool, error) {
	_, ok := db.nodes[string(key)]
	return ok, nil
}

func (db *proofDB) Get(key []byte) ([]byte, error) {
	v, ok := db.nodes[string(key)]
	if !ok {
		return nil, errors.New("mpt: proof node missing")
	}
	return v, nil
}

// Decoder verifies Merkle-Patricia proofs and memoizes verified
// (root, key) lookups behind a bounded LRU cache.
type Decoder struct {
	cache *lru.Cache
}

type cacheEntry struct {
	value []byte
	err   error
}

// NewDecoder builds a Decoder whose cache holds up to capacity
// verified (root, key) results.
func NewDecoder(capacity int) (*Decoder, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Decoder{cache: c}, nil
}

// Verify checks that key maps to the returned value under root,
// given proof — the sibling/ancestor trie nodes a light client
// received alongside an eth_getProof response. It returns ErrNotFound
// if the proof correctly demonstrates key's absence.
func (d *Decoder) Verify(root common.Hash, key []byte, proof []ProofNode) ([]byte, error) {
	cacheKey := cacheKeyFor(root, key, proof)
	if v, ok := d.cache.Get(cacheKey); ok {
		entry := v.(cacheEntry)
		return entry.value, entry.err
	}

	db := newProofDB(proof)
	value, err := trie.VerifyProof(root, key, db)
	if err == nil && value == nil {
		err = ErrNotFound
	}
	d.cache.Add(cacheKey, cacheEntry{value: value, err: err})
	return value, err
}

// cacheKeyFor derives a stable map key from the (root, key, proof)
// triple. The proof's node count and first node are folded in so two
// verification attempts against the same (root, key) but a
// differently-shaped (e.g. truncated) proof are not conflated.
func cacheKeyFor(root common.Hash, key []byte, proof []ProofNode) string {
	h := root.Hex() + ":" + string(key)
	if len(proof) > 0 {
		h += ":" + string(crypto256(proof[0])) + ":" + strconv.Itoa(len(proof))
	}
	return h
}
