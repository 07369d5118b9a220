package lightwallet

// WalletId, TransactionId, BlockId and ListenerId are stable handles
// into the Node's registries. They are never reused and never
// shifted: once issued, a handle addresses the same slot for the
// lifetime of the Node. NoId is the sentinel meaning "absent": it
// terminates WalletGetTransactions' result, fills the ids an Event
// does not carry, and is the TransactionId returned alongside an
// error. Lookups by id return a nil pointer rather than NoId.
type (
	WalletId      int
	TransactionId int
	BlockId       int
	ListenerId    int
)

// NoId is the sentinel value for every handle type above.
const NoId = -1
