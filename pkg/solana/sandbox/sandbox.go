// Package sandbox provides an in-process stand-in for the host runtime, so
// programs can be executed and observed without a validator. It keeps a
// ledger of accounts, implements the system program natively, and supports
// cross-program invocations with program derived signing authority.
//
// Execution is single threaded. An invocation runs to completion or fails
// outright; there is no scheduling or conflict detection to model.
package sandbox

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/example-program/pkg/solana"
	"github.com/code-payments/example-program/pkg/solana/system"
)

var (
	ErrUnknownProgram       = errors.New("no handler registered for program")
	ErrNoInvocationInFlight = errors.New("no invocation in flight")
	ErrMaxCallDepthExceeded = errors.New("max call depth exceeded")
)

// maxCallDepth matches the runtime's CPI depth limit.
const maxCallDepth = 4

// Handler processes a single instruction for a registered program. It
// receives the program's own id, the ordered account handles resolved from
// the instruction's account references, and the raw instruction data.
type Handler func(program ed25519.PublicKey, accounts []*solana.AccountInfo, data []byte) error

type frame struct {
	program ed25519.PublicKey
	signed  map[string]struct{}
}

type Sandbox struct {
	log *logrus.Entry

	accounts map[string]*solana.AccountInfo
	handlers map[string]Handler

	stack []frame
}

func New() *Sandbox {
	return &Sandbox{
		log:      logrus.StandardLogger().WithField("type", "solana/sandbox"),
		accounts: make(map[string]*solana.AccountInfo),
		handlers: make(map[string]Handler),
	}
}

// Register installs a handler as the executable code for a program id.
func (s *Sandbox) Register(program ed25519.PublicKey, handler Handler) {
	s.handlers[base58.Encode(program)] = handler
}

// Fund credits lamports to an account, creating it if it doesn't exist yet.
// This is the external funding step that would otherwise be a transfer from
// some pre-existing funded account.
func (s *Sandbox) Fund(key ed25519.PublicKey, lamports uint64) *solana.AccountInfo {
	account := s.loadOrCreate(key)
	account.Lamports += lamports
	return account
}

// Account returns the live account record for a key. Accounts spring into
// existence the first time they are referenced, as unfunded system-owned
// accounts with no data.
func (s *Sandbox) Account(key ed25519.PublicKey) *solana.AccountInfo {
	return s.loadOrCreate(key)
}

// SetAccount replaces the stored account record for info.Key. Intended for
// test setup that needs account state the system program wouldn't produce.
func (s *Sandbox) SetAccount(info *solana.AccountInfo) {
	s.accounts[base58.Encode(info.Key)] = info
}

// Process executes a top-level instruction, as if it arrived in a
// transaction signed by every account marked as a signer in the account
// references.
func (s *Sandbox) Process(instruction solana.Instruction) error {
	signed := make(map[string]struct{})
	for _, meta := range instruction.Accounts {
		if meta.IsSigner {
			signed[base58.Encode(meta.PublicKey)] = struct{}{}
		}
	}

	return s.dispatch(frame{program: instruction.Program, signed: signed}, instruction)
}

// InvokeSigned implements solana.Invoker for the program at the top of the
// invocation stack. Signer privileges from the calling frame carry over, and
// each seed group is turned into a program derived address that counts as
// having signed the inner instruction.
func (s *Sandbox) InvokeSigned(instruction solana.Instruction, accounts []*solana.AccountInfo, signers ...[][]byte) error {
	if len(s.stack) == 0 {
		return ErrNoInvocationInFlight
	}
	if len(s.stack) >= maxCallDepth {
		return ErrMaxCallDepthExceeded
	}

	caller := s.stack[len(s.stack)-1]

	// The invoking program must pass a handle for every account the inner
	// instruction references.
	for _, meta := range instruction.Accounts {
		var found bool
		for _, account := range accounts {
			if bytes.Equal(account.Key, meta.PublicKey) {
				found = true
				break
			}
		}
		if !found {
			return solana.ErrMissingAccount
		}
	}

	signed := make(map[string]struct{})
	for k := range caller.signed {
		signed[k] = struct{}{}
	}
	for _, seeds := range signers {
		address, err := solana.CreateProgramAddress(caller.program, seeds...)
		if err != nil {
			return errors.Wrap(err, "failed to derive signer address")
		}
		signed[base58.Encode(address)] = struct{}{}
	}

	return s.dispatch(frame{program: instruction.Program, signed: signed}, instruction)
}

func (s *Sandbox) dispatch(f frame, instruction solana.Instruction) error {
	accounts := make([]*solana.AccountInfo, len(instruction.Accounts))
	for i, meta := range instruction.Accounts {
		account := s.loadOrCreate(meta.PublicKey)

		_, isSigner := f.signed[base58.Encode(meta.PublicKey)]
		account.IsSigner = isSigner
		account.IsWritable = meta.IsWritable

		accounts[i] = account
	}

	if bytes.Equal(instruction.Program, system.ProgramKey[:]) {
		return s.processSystem(instruction)
	}

	handler, ok := s.handlers[base58.Encode(instruction.Program)]
	if !ok {
		return ErrUnknownProgram
	}

	s.stack = append(s.stack, f)
	defer func() {
		s.stack = s.stack[:len(s.stack)-1]
	}()

	return handler(instruction.Program, accounts, instruction.Data)
}

func (s *Sandbox) loadOrCreate(key ed25519.PublicKey) *solana.AccountInfo {
	k := base58.Encode(key)
	if account, ok := s.accounts[k]; ok {
		return account
	}

	account := &solana.AccountInfo{
		Key:   append(ed25519.PublicKey{}, key...),
		Owner: append(ed25519.PublicKey{}, system.ProgramKey[:]...),
	}
	s.accounts[k] = account
	return account
}
