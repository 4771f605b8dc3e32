package sandbox

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/example-program/pkg/solana"
	"github.com/code-payments/example-program/pkg/solana/system"
)

// processSystem implements the subset of the system program this repository
// exercises: CreateAccount, Transfer and Allocate. Signer flags on the
// resolved accounts have already been set by dispatch.
func (s *Sandbox) processSystem(instruction solana.Instruction) error {
	if create, err := system.DecompileCreateAccount(instruction); err == nil {
		return s.applyCreateAccount(create)
	} else if err != solana.ErrIncorrectInstruction {
		return err
	}

	if transfer, err := system.DecompileTransfer(instruction); err == nil {
		return s.applyTransfer(transfer)
	} else if err != solana.ErrIncorrectInstruction {
		return err
	}

	if allocate, err := system.DecompileAllocate(instruction); err == nil {
		return s.applyAllocate(allocate)
	} else if err != solana.ErrIncorrectInstruction {
		return err
	}

	return solana.ErrInvalidInstructionData
}

func (s *Sandbox) applyCreateAccount(args *system.DecompiledCreateAccount) error {
	funder := s.loadOrCreate(args.Funder)
	account := s.loadOrCreate(args.Address)

	if !funder.IsSigner || !account.IsSigner {
		return solana.ErrMissingRequiredSignature
	}
	if account.Lamports != 0 || len(account.Data) != 0 || !bytes.Equal(account.Owner, system.ProgramKey[:]) {
		return solana.ErrAccountAlreadyInUse
	}
	if funder.Lamports < args.Lamports {
		return solana.ErrInsufficientFunds
	}

	funder.Lamports -= args.Lamports
	account.Lamports = args.Lamports
	account.Data = make([]byte, args.Size)
	account.Owner = append(ed25519.PublicKey{}, args.Owner...)

	s.log.WithFields(logrus.Fields{
		"account":  base58.Encode(account.Key),
		"owner":    base58.Encode(account.Owner),
		"lamports": account.Lamports,
		"size":     args.Size,
	}).Debug("created account")

	return nil
}

func (s *Sandbox) applyTransfer(args *system.DecompiledTransfer) error {
	from := s.loadOrCreate(args.From)
	to := s.loadOrCreate(args.To)

	if !from.IsSigner {
		return solana.ErrMissingRequiredSignature
	}
	if !bytes.Equal(from.Owner, system.ProgramKey[:]) {
		return solana.ErrIncorrectProgram
	}
	if from.Lamports < args.Lamports {
		return solana.ErrInsufficientFunds
	}

	from.Lamports -= args.Lamports
	to.Lamports += args.Lamports

	return nil
}

func (s *Sandbox) applyAllocate(args *system.DecompiledAllocate) error {
	account := s.loadOrCreate(args.Address)

	if !account.IsSigner {
		return solana.ErrMissingRequiredSignature
	}
	if len(account.Data) != 0 || !bytes.Equal(account.Owner, system.ProgramKey[:]) {
		return solana.ErrAccountAlreadyInUse
	}
	if account.Lamports < RentExemptMinimum(args.Size) {
		return solana.ErrInsufficientFunds
	}

	account.Data = make([]byte, args.Size)

	s.log.WithFields(logrus.Fields{
		"account": base58.Encode(account.Key),
		"size":    args.Size,
	}).Debug("allocated account data")

	return nil
}
