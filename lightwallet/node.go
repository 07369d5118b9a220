// Package lightwallet implements the coordination core of a light
// Ethereum wallet client: a long-lived Node that owns an account,
// tracks per-currency wallets, holds the catalog of transactions and
// blocks it has learned about, and runs a periodic background worker
// that asks an injected ClientPort to refresh chain-derived facts.
package lightwallet

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"

	"github.com/dirmansebastian/lightwallet/mpt"
	"github.com/dirmansebastian/lightwallet/walletevent"
)

// proofCacheSize bounds the Node's Merkle-Patricia proof verification
// cache (one entry per distinct (root, key) pair checked).
const proofCacheSize = 256

// State is the Node's lifecycle state:
//
//	Created --connect--> Connecting --worker starts--> Connected
//	                    \__thread-spawn fails--> Errored
//	Connected --disconnect--> Disconnecting --worker exit--> Disconnected
//	Disconnected/Errored --connect--> Connecting (reentry allowed)
type State int

const (
	Created State = iota
	Connecting
	Connected
	Disconnecting
	Disconnected
	Errored
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	case Disconnected:
		return "disconnected"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Type selects which remote backend family the Node talks to. Les
// currently routes through the same callbacks as JsonRpc — the
// discriminant is kept so a future LES backend can fan requests out
// differently.
type Type int

const (
	TypeNone Type = iota
	TypeJsonRpc
	TypeLes
)

// PollInterval is the fixed period between polling cycles: a constant
// period with no adaptive backoff.
const PollInterval = 15 * time.Second

// Node is the light-wallet coordination core. Exported methods are
// safe for concurrent use by multiple goroutines: the caller's own
// goroutines, the Node's worker goroutine, and the goroutines from
// which a ClientPort implementation announces results back.
type Node struct {
	mu sync.Mutex

	network string
	chainID *big.Int
	account common.Address
	typ     Type

	state       State
	blockHeight uint64
	accountNonce uint64
	requestID   uint64

	client ClientPort

	wallets      walletRegistry
	transactions transactionRegistry
	blocks       blockRegistry
	listeners    listenerRegistry

	bus *walletevent.Bus

	// outstanding tracks requestIds issued but not yet answered by an
	// announce-back, so the worker can report how many requests were
	// orphaned when it stops after a disconnect.
	outstanding mapset.Set[uint64]

	workerWG  errgroup.Group
	workerRun bool

	proofs *mpt.Decoder

	log log.Logger
}

// NewNode creates a Node for the given network/chain id/account and
// backend type. The ether-holding wallet (registry slot 0) is created
// immediately, satisfying the invariant that getWallet() always
// resolves.
func NewNode(network string, chainID *big.Int, account common.Address, typ Type) *Node {
	proofs, err := mpt.NewDecoder(proofCacheSize)
	if err != nil {
		// Only fails on a non-positive capacity, which proofCacheSize
		// never is; a Node without working proof verification would
		// silently accept forged inclusion claims, so fail loudly.
		panic(fmt.Sprintf("lightwallet: mpt.NewDecoder: %v", err))
	}

	n := &Node{
		network:     network,
		chainID:     chainID,
		account:     account,
		typ:         typ,
		state:       Created,
		outstanding: mapset.NewThreadUnsafeSet[uint64](),
		proofs:      proofs,
		log:         log.New("network", network, "account", account),
	}
	n.bus = walletevent.NewBus(n.dispatch, 256)
	n.wallets.insert(&Wallet{network: network, account: account})
	return n
}

// ChainID returns the chain id the Node signs transactions for.
func (n *Node) ChainID() *big.Int { return n.chainID }

// Network returns the chain identifier the Node was created for.
func (n *Node) Network() string { return n.network }

// Account returns the address this Node tracks.
func (n *Node) Account() common.Address { return n.account }

// State returns the Node's current lifecycle state.
func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// BlockHeight returns the last block number the Node learned about.
func (n *Node) BlockHeight() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.blockHeight
}

// nextRequestID returns a fresh, monotonically increasing request
// id. Callers must hold n.mu.
func (n *Node) nextRequestID() uint64 {
	n.requestID++
	id := n.requestID
	n.outstanding.Add(id)
	return id
}

// Connect transitions the Node from {Created, Disconnected, Errored}
// into Connecting and spawns the polling worker. It returns false
// without changing state if the Node is already Connecting, Connected
// or Disconnecting. The state is set to Connecting
// before the worker is spawned to eliminate a start race: by the time
// the worker's goroutine runs, any concurrent Connect call already
// observes a non-reentrant state and is rejected.
func (n *Node) Connect(client ClientPort) bool {
	n.mu.Lock()
	switch n.state {
	case Connecting, Connected, Disconnecting:
		n.mu.Unlock()
		return false
	}
	n.client = client
	n.state = Connecting
	n.workerRun = true
	n.mu.Unlock()

	n.workerWG = errgroup.Group{}
	n.workerWG.Go(func() error {
		n.runWorker()
		return nil
	})
	return true
}

// Disconnect asks the polling worker to stop. It is idempotent: a
// second call while already Disconnecting or Disconnected returns
// true without further effect.
func (n *Node) Disconnect() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch n.state {
	case Disconnected:
		return true
	case Connecting, Connected:
		n.state = Disconnecting
		return true
	case Disconnecting:
		return true
	default: // Created, Errored
		return false
	}
}

// Close waits for the worker to publish Disconnected (calling
// Disconnect first if necessary) or for ctx to expire, resolving the
// "teardown race" design note: a Node must never be torn down while
// its worker is still running.
func (n *Node) Close(ctx context.Context) error {
	n.Disconnect()

	done := make(chan error, 1)
	go func() { done <- n.workerWG.Wait() }()

	select {
	case err := <-done:
		n.bus.Close()
		return err
	case <-ctx.Done():
		return fmt.Errorf("lightwallet: close timed out waiting for worker: %w", ctx.Err())
	}
}

func (n *Node) dispatch(ev walletevent.Event) {
	n.listeners.each(func(l *Listener) {
		l.dispatch(ev)
	})
}

// AddListener registers a new listener and returns its stable handle.
func (n *Node) AddListener(l *Listener) ListenerId {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.listeners.insert(l)
}

// RemoveListener zeroes a listener's slot. The ListenerId is never
// reused or shifted.
func (n *Node) RemoveListener(id ListenerId) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.listeners.remove(id)
}
