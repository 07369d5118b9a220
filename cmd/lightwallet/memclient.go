package main

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/dirmansebastian/lightwallet"
)

// memClient is a minimal in-process ClientPort used to drive the demo
// CLI without a real JSON-RPC endpoint. It answers every request from
// fixed in-memory state, the way light/txpool_test.go's testTxRelay
// fake answers pool requests for the light-client test harness it
// backs. Every announce-back runs on its own goroutine: ClientPort's
// doc comment requires implementations not to call back into the Node
// synchronously, since the Node's request helpers may be holding its
// lock when they call out.
type memClient struct {
	mu sync.Mutex

	blockNumber uint64
	nonce       uint64
	balances    map[common.Address]*big.Int
	gasPrice    *big.Int
}

func newMemClient() *memClient {
	return &memClient{
		blockNumber: 1_000_000,
		nonce:       0,
		balances:    map[common.Address]*big.Int{},
		gasPrice:    big.NewInt(20_000_000_000),
	}
}

func (c *memClient) GetBalance(n *lightwallet.Node, wallet lightwallet.WalletId, address common.Address, requestID uint64) {
	c.mu.Lock()
	bal, ok := c.balances[address]
	if !ok {
		bal = big.NewInt(0)
	}
	c.mu.Unlock()
	go n.AnnounceBalance(requestID, wallet, bal, nil)
}

func (c *memClient) GetGasPrice(n *lightwallet.Node, wallet lightwallet.WalletId, requestID uint64) {
	// The Node has no gas-price announce-back, so there is nothing to
	// report.
}

func (c *memClient) EstimateGas(n *lightwallet.Node, wallet lightwallet.WalletId, tx lightwallet.TransactionId, to common.Address, amountHex, dataHex string, requestID uint64) {
	go n.AnnounceGasEstimate(requestID, wallet, tx, 21000, nil)
}

func (c *memClient) SubmitTransaction(n *lightwallet.Node, wallet lightwallet.WalletId, tx lightwallet.TransactionId, rawHex string, requestID uint64) {
	c.mu.Lock()
	c.nonce++
	c.mu.Unlock()
	go n.AnnounceSubmitted(requestID, wallet, tx, nil)
}

func (c *memClient) GetTransactions(n *lightwallet.Node, address common.Address, requestID uint64) {
	go n.AnnounceTransactions(requestID, nil)
}

func (c *memClient) GetLogs(n *lightwallet.Node, contract *common.Address, addressTopic, eventTopic common.Hash, requestID uint64) {
	go n.AnnounceLogs(requestID, nil)
}

func (c *memClient) GetBlockNumber(n *lightwallet.Node, requestID uint64) {
	c.mu.Lock()
	c.blockNumber++
	height := c.blockNumber
	c.mu.Unlock()

	go func() {
		n.AnnounceBlockNumber(requestID, height)
		header := &types.Header{Number: new(big.Int).SetUint64(height)}
		n.AnnounceBlock(header)
	}()
}

func (c *memClient) GetNonce(n *lightwallet.Node, address common.Address, requestID uint64) {
	c.mu.Lock()
	nonce := c.nonce
	c.mu.Unlock()
	go n.AnnounceNonce(requestID, nonce)
}

func (c *memClient) fund(address common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[address] = amount
}

var _ lightwallet.ClientPort = (*memClient)(nil)
