package solana

import (
	"github.com/pkg/errors"
)

// Instruction processing error values, named after the runtime's instruction
// error taxonomy for the cases this repository can produce.
//
// Reference: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
var (
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrIncorrectProgram         = errors.New("incorrect program")
	ErrIncorrectInstruction     = errors.New("incorrect instruction")
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
	ErrMissingAccount           = errors.New("missing account")
	ErrAccountDataTooSmall      = errors.New("account data too small")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrInsufficientFunds        = errors.New("insufficient funds")
)
