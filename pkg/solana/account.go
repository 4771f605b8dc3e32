package solana

import (
	"crypto/ed25519"
)

// AccountInfo is the view of an account handed to a program for the duration
// of a single invocation.
//
// The handle is borrowed from the runtime. Mutations to Data and Lamports are
// observed by the runtime once the invocation returns successfully; the
// runtime is responsible for discarding writes from a failed invocation.
type AccountInfo struct {
	Key      ed25519.PublicKey
	Owner    ed25519.PublicKey
	Lamports uint64
	Data     []byte

	IsSigner   bool
	IsWritable bool
}

// Invoker executes an instruction on behalf of the currently running program
// (a cross-program invocation).
//
// Each entry in signers is one seed group. The runtime derives the
// corresponding program address against the calling program's id and treats
// it as having signed the inner instruction, in addition to any signatures
// the caller already holds.
type Invoker interface {
	InvokeSigned(instruction Instruction, accounts []*AccountInfo, signers ...[][]byte) error
}
