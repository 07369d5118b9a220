package lightwallet

import "errors"

// Precondition errors. The core never aborts the process on these: it
// returns one of these sentinels and, on the same call, announces a
// failure-status event carrying the matching code.
var (
	ErrNotConnected      = errors.New("lightwallet: node not connected")
	ErrUnknownWallet     = errors.New("lightwallet: unknown wallet")
	ErrUnknownTransaction = errors.New("lightwallet: unknown transaction")
)
