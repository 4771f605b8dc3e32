package system

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/example-program/pkg/solana"
)

// ProgramKey is the address of the system program (the all-zero key,
// 11111111111111111111111111111111 in base58).
var ProgramKey [32]byte

const (
	commandCreateAccount uint32 = iota
	// nolint:varcheck,deadcode,unused
	commandAssign
	commandTransfer
	// nolint:varcheck,deadcode,unused
	commandCreateAccountWithSeed
	// nolint:varcheck,deadcode,unused
	commandAdvanceNonceAccount
	// nolint:varcheck,deadcode,unused
	commandWithdrawNonceAccount
	// nolint:varcheck,deadcode,unused
	commandInitializeNonceAccount
	// nolint:varcheck,deadcode,unused
	commandAuthorizeNonceAccount
	commandAllocate
	// nolint:varcheck,deadcode,unused
	commandAllocateWithSeed
	// nolint:varcheck,deadcode,unused
	commandAssignWithSeed
	// nolint:varcheck,deadcode,unused
	commandTransferWithSeed
)

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	//
	// CreateAccount {
	//   // Number of lamports to transfer to the new account
	//   lamports: u64,
	//   // Number of bytes of memory to allocate
	//   space: u64,
	//
	//   // Address of program that will own the new account
	//   owner: Pubkey,
	// }
	//
	data := make([]byte, 4+2*8+32)
	binary.LittleEndian.PutUint32(data, commandCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[4+8:], size)
	copy(data[4+2*8:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

type DecompiledCreateAccount struct {
	Funder  ed25519.PublicKey
	Address ed25519.PublicKey

	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

func DecompileCreateAccount(i solana.Instruction) (*DecompiledCreateAccount, error) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], commandCreateAccount)

	if !bytes.Equal(i.Program, ProgramKey[:]) {
		return nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(i.Data, prefix[:]) {
		return nil, solana.ErrIncorrectInstruction
	}

	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != 52 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	v := &DecompiledCreateAccount{
		Funder:  i.Accounts[0].PublicKey,
		Address: i.Accounts[1].PublicKey,
	}
	v.Lamports = binary.LittleEndian.Uint64(i.Data[4:])
	v.Size = binary.LittleEndian.Uint64(i.Data[4+8:])
	v.Owner = make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(v.Owner, i.Data[4+2*8:])

	return v, nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L83-L89
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	//
	// Transfer {
	//   lamports: u64,
	// }
	//
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

type DecompiledTransfer struct {
	From ed25519.PublicKey
	To   ed25519.PublicKey

	Lamports uint64
}

func DecompileTransfer(i solana.Instruction) (*DecompiledTransfer, error) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], commandTransfer)

	if !bytes.Equal(i.Program, ProgramKey[:]) {
		return nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(i.Data, prefix[:]) {
		return nil, solana.ErrIncorrectInstruction
	}

	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != 12 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	return &DecompiledTransfer{
		From:     i.Accounts[0].PublicKey,
		To:       i.Accounts[1].PublicKey,
		Lamports: binary.LittleEndian.Uint64(i.Data[4:]),
	}, nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L158-L162
func Allocate(address ed25519.PublicKey, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] New account
	//
	// Allocate {
	//   // Number of bytes of memory to allocate
	//   space: u64,
	// }
	//
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandAllocate)
	binary.LittleEndian.PutUint64(data[4:], size)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(address, true),
	)
}

type DecompiledAllocate struct {
	Address ed25519.PublicKey
	Size    uint64
}

func DecompileAllocate(i solana.Instruction) (*DecompiledAllocate, error) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], commandAllocate)

	if !bytes.Equal(i.Program, ProgramKey[:]) {
		return nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(i.Data, prefix[:]) {
		return nil, solana.ErrIncorrectInstruction
	}

	if len(i.Accounts) != 1 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != 12 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}

	return &DecompiledAllocate{
		Address: i.Accounts[0].PublicKey,
		Size:    binary.LittleEndian.Uint64(i.Data[4:]),
	}, nil
}
