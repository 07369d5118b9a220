package lightwallet

import "github.com/ethereum/go-ethereum/common"

// ClientPort is the injected bridge to a remote JSON-RPC / light
// client backend. Every method dispatches a request and returns
// immediately — results arrive later, on arbitrary goroutines, via
// the Node's announce-back methods (AnnounceBalance, AnnounceNonce,
// ...). Implementations must not call back into the Node
// synchronously from within one of these methods; the Node's request
// helpers may be holding its lock when they call out.
type ClientPort interface {
	GetBalance(n *Node, wallet WalletId, address common.Address, requestID uint64)
	GetGasPrice(n *Node, wallet WalletId, requestID uint64)
	EstimateGas(n *Node, wallet WalletId, tx TransactionId, to common.Address, amountHex, dataHex string, requestID uint64)
	SubmitTransaction(n *Node, wallet WalletId, tx TransactionId, rawHex string, requestID uint64)
	GetTransactions(n *Node, address common.Address, requestID uint64)
	// GetLogs requests the ERC20 Transfer-log history matching
	// eventTopic (the Transfer event selector) where addressTopic
	// appears in EITHER the `from` or the `to` indexed position — one
	// call covers both, the way the filter query ORs across topic
	// positions rather than the Node issuing two separate requests.
	GetLogs(n *Node, contract *common.Address, addressTopic, eventTopic common.Hash, requestID uint64)
	GetBlockNumber(n *Node, requestID uint64)
	GetNonce(n *Node, address common.Address, requestID uint64)
}

// erc20TransferTopic is the keccak256 selector of the ERC20 Transfer
// event: Transfer(address indexed from, address indexed to, uint256 value).
var erc20TransferTopic = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")

// AddressTopic encodes an address into the 32-byte topic shape an
// indexed event parameter uses (left-padded with zeros), the way
// go-ethereum/accounts/abi encodes indexed address arguments.
func AddressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}
