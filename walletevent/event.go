// Package walletevent implements the Light Node's typed event bus.
//
// The shape mirrors github.com/ethereum/go-ethereum/event.Feed: a
// single internal channel, one dispatcher goroutine, and a guarantee
// that events are delivered to every listener in the order they were
// posted. Unlike event.Feed, subscribers here are not dynamic
// channel readers — the Node owns a fixed listener registry and the
// Bus's job is only to serialize delivery into that registry's
// callbacks through a single-threaded dispatch loop.
package walletevent

// Category groups events by the kind of object they describe.
type Category int

const (
	CategoryWallet Category = iota
	CategoryTransaction
	CategoryBlock
)

func (c Category) String() string {
	switch c {
	case CategoryWallet:
		return "wallet"
	case CategoryTransaction:
		return "transaction"
	case CategoryBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Code identifies the specific event within its category.
type Code int

const (
	WalletCreated Code = iota
	WalletBalanceUpdated
	WalletDefaultGasLimitUpdated
	WalletDefaultGasPriceUpdated

	TransactionCreated
	TransactionSigned
	TransactionSubmitted
	TransactionIncluded
	TransactionErrored
	TransactionGasEstimateUpdated
	TransactionAdded
	TransactionRemoved

	BlockCreated
)

// Status reports whether the operation an event announces succeeded.
type Status int

const (
	StatusSuccess Status = iota
	StatusErrorNodeNotConnected
	StatusErrorUnknownWallet
	StatusErrorUnknownTransaction
	StatusErrorCallback
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusErrorNodeNotConnected:
		return "error: node not connected"
	case StatusErrorUnknownWallet:
		return "error: unknown wallet"
	case StatusErrorUnknownTransaction:
		return "error: unknown transaction"
	case StatusErrorCallback:
		return "error: callback failure"
	default:
		return "error: unknown"
	}
}

// Event is the payload posted to the Bus. WalletId/TransactionId/
// BlockId are -1 when not applicable to the event's category.
type Event struct {
	Category      Category
	Code          Code
	Status        Status
	WalletId      int
	TransactionId int
	BlockId       int
	Description   string
}
