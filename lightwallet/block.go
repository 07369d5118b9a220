package lightwallet

import "github.com/ethereum/go-ethereum/core/types"

// Block is a decoded block header the node has learned about. It is
// addressable both by its stable BlockId and, via a linear scan,
// by its 32-byte hash.
type Block struct {
	id     BlockId
	header *types.Header
}

// Id returns the block's stable registry handle.
func (b *Block) Id() BlockId { return b.id }

// Header exposes the decoded header.
func (b *Block) Header() *types.Header { return b.header }

// Hash returns the block's hash.
func (b *Block) Hash() [32]byte { return b.header.Hash() }

// Number returns the block's height.
func (b *Block) Number() uint64 {
	if b.header.Number == nil {
		return 0
	}
	return b.header.Number.Uint64()
}
