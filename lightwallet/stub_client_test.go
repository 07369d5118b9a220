package lightwallet

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// stubClient is a synchronous-looking, in-memory ClientPort test
// double, grounded in light/txpool_test.go's testTxRelay: every call
// records its arguments for assertions and replies on its own
// goroutine, respecting ClientPort's documented contract that
// implementations must not call back into the Node synchronously (the
// Node's request helpers may be holding its lock when they call out).
type stubClient struct {
	mu sync.Mutex

	balances    map[common.Address]*big.Int
	blockNumber uint64
	nonce       uint64
	gasEstimate uint64
	submitErr   error

	submittedRaw  []string
	lastAmountHex string
	requestedBals []common.Address
	getLogsCalls  int
	txHistory     []*types.Transaction
	logs          []types.Log
}

func newStubClient() *stubClient {
	return &stubClient{balances: map[common.Address]*big.Int{}}
}

func (c *stubClient) GetBalance(n *Node, wallet WalletId, address common.Address, requestID uint64) {
	c.mu.Lock()
	c.requestedBals = append(c.requestedBals, address)
	bal, ok := c.balances[address]
	if !ok {
		bal = big.NewInt(0)
	}
	c.mu.Unlock()
	go n.AnnounceBalance(requestID, wallet, bal, nil)
}

func (c *stubClient) GetGasPrice(n *Node, wallet WalletId, requestID uint64) {}

func (c *stubClient) EstimateGas(n *Node, wallet WalletId, tx TransactionId, to common.Address, amountHex, dataHex string, requestID uint64) {
	c.mu.Lock()
	c.lastAmountHex = amountHex
	est := c.gasEstimate
	c.mu.Unlock()
	go n.AnnounceGasEstimate(requestID, wallet, tx, est, nil)
}

func (c *stubClient) SubmitTransaction(n *Node, wallet WalletId, tx TransactionId, rawHex string, requestID uint64) {
	c.mu.Lock()
	c.submittedRaw = append(c.submittedRaw, rawHex)
	err := c.submitErr
	c.mu.Unlock()
	go n.AnnounceSubmitted(requestID, wallet, tx, err)
}

func (c *stubClient) GetTransactions(n *Node, address common.Address, requestID uint64) {
	c.mu.Lock()
	txs := c.txHistory
	c.mu.Unlock()
	go n.AnnounceTransactions(requestID, txs)
}

func (c *stubClient) GetLogs(n *Node, contract *common.Address, addressTopic, eventTopic common.Hash, requestID uint64) {
	c.mu.Lock()
	c.getLogsCalls++
	logs := c.logs
	c.mu.Unlock()
	go n.AnnounceLogs(requestID, logs)
}

func (c *stubClient) GetBlockNumber(n *Node, requestID uint64) {
	c.mu.Lock()
	height := c.blockNumber
	c.mu.Unlock()
	go n.AnnounceBlockNumber(requestID, height)
}

func (c *stubClient) GetNonce(n *Node, address common.Address, requestID uint64) {
	c.mu.Lock()
	nonce := c.nonce
	c.mu.Unlock()
	go n.AnnounceNonce(requestID, nonce)
}

func (c *stubClient) setBalance(addr common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[addr] = amount
}

var _ ClientPort = (*stubClient)(nil)
