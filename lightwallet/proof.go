package lightwallet

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/dirmansebastian/lightwallet/mpt"
)

// VerifyTransactionProof checks a Merkle-Patricia inclusion proof for
// key against root (the block header's transactions root, or a
// receipts root for a receipt proof) using the node's Decoder. A
// ClientPort implementation is expected to call this before reporting
// AnnounceTransactionIncluded, so a chain peer cannot make the Node
// believe a transaction was mined by announcing it without a proof
// that actually checks out.
func (n *Node) VerifyTransactionProof(root common.Hash, key []byte, proof []mpt.ProofNode) ([]byte, error) {
	return n.proofs.Verify(root, key, proof)
}
