package counter

import (
	"crypto/ed25519"

	"github.com/code-payments/example-program/pkg/solana"
	"github.com/code-payments/example-program/pkg/solana/binary"
)

type CounterInstruction uint8

const (
	InstructionExample CounterInstruction = iota
	InstructionCrossProgramInvoke
	InstructionTransfer
)

// Instruction is the decoded form of the program's wire format:
// a one byte tag followed by an optional little-endian uint64 amount.
type Instruction struct {
	Type CounterInstruction

	// Amount is set for Example and Transfer. It is carried by the wire
	// format but currently has no effect on processing.
	Amount uint64
}

// UnpackInstruction decodes raw instruction data. It is a pure function of
// its input; any malformed input fails with ErrInvalidInstructionData.
func UnpackInstruction(data []byte) (*Instruction, error) {
	if len(data) == 0 {
		return nil, solana.ErrInvalidInstructionData
	}

	var offset int

	var tag uint8
	binary.GetUint8(data[offset:], &tag, &offset)

	switch CounterInstruction(tag) {
	case InstructionExample, InstructionTransfer:
		if len(data[offset:]) < 8 {
			return nil, solana.ErrInvalidInstructionData
		}

		var amount uint64
		binary.GetUint64(data[offset:], &amount, &offset)

		return &Instruction{
			Type:   CounterInstruction(tag),
			Amount: amount,
		}, nil
	case InstructionCrossProgramInvoke:
		return &Instruction{
			Type: InstructionCrossProgramInvoke,
		}, nil
	default:
		return nil, solana.ErrInvalidInstructionData
	}
}

func putCounterInstruction(dst []byte, v CounterInstruction, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

const ExampleInstructionArgsSize = 8 // amount

type ExampleInstructionArgs struct {
	Amount uint64
}

type ExampleInstructionAccounts struct {
	Counter ed25519.PublicKey
}

func NewExampleInstruction(
	program ed25519.PublicKey,
	accounts *ExampleInstructionAccounts,
	args *ExampleInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+ExampleInstructionArgsSize)

	putCounterInstruction(data, InstructionExample, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Counter,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

type CrossProgramInvokeInstructionAccounts struct {
	Counter   ed25519.PublicKey
	Allocated ed25519.PublicKey
}

func NewCrossProgramInvokeInstruction(
	program ed25519.PublicKey,
	accounts *CrossProgramInvokeInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)

	putCounterInstruction(data, InstructionCrossProgramInvoke, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Counter,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				// The allocation target signs so the system program accepts
				// the delegated allocate.
				PublicKey:  accounts.Allocated,
				IsWritable: true,
				IsSigner:   true,
			},
		},
	}
}

const TransferInstructionArgsSize = 8 // amount

type TransferInstructionArgs struct {
	Amount uint64
}

type TransferInstructionAccounts struct {
	Counter ed25519.PublicKey
}

func NewTransferInstruction(
	program ed25519.PublicKey,
	accounts *TransferInstructionAccounts,
	args *TransferInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+TransferInstructionArgsSize)

	putCounterInstruction(data, InstructionTransfer, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Counter,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}
