package counter

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/example-program/pkg/solana"
	"github.com/code-payments/example-program/pkg/solana/system"
)

// Processor is the program's executable logic. All collaborators are
// explicit: the runtime supplies the program id and account handles per
// invocation, and delegated calls go through the injected invoker.
type Processor struct {
	log     *logrus.Entry
	invoker solana.Invoker
}

func NewProcessor(invoker solana.Invoker) *Processor {
	return &Processor{
		log:     logrus.StandardLogger().WithField("type", "solana/counter/processor"),
		invoker: invoker,
	}
}

// Process is the program entrypoint. It decodes the instruction data and
// executes the decoded instruction against the ordered account handles.
//
// The first failure aborts the invocation; the runtime is responsible for
// discarding any partial writes.
func (p *Processor) Process(program ed25519.PublicKey, accounts []*solana.AccountInfo, data []byte) error {
	instruction, err := UnpackInstruction(data)
	if err != nil {
		return err
	}

	log := p.log.WithField("program", base58.Encode(program))

	switch instruction.Type {
	case InstructionExample:
		log.Debug("processing example instruction")
		return p.processExample(program, accounts, instruction.Amount)
	case InstructionCrossProgramInvoke:
		log.Debug("processing cross program invoke instruction")
		return p.processCrossProgramInvoke(program, accounts)
	case InstructionTransfer:
		log.Debug("processing transfer instruction")
		return p.processTransfer(program, accounts, instruction.Amount)
	default:
		return solana.ErrInvalidInstructionData
	}
}

// The amount is decoded for wire compatibility but doesn't participate in
// the state change.
func (p *Processor) processExample(program ed25519.PublicKey, accounts []*solana.AccountInfo, amount uint64) error {
	if len(accounts) < 1 {
		return solana.ErrNotEnoughAccountKeys
	}
	target := accounts[0]

	return p.incrementCounter(program, target)
}

func (p *Processor) processCrossProgramInvoke(program ed25519.PublicKey, accounts []*solana.AccountInfo) error {
	if len(accounts) < 2 {
		return solana.ErrNotEnoughAccountKeys
	}
	target := accounts[0]
	allocated := accounts[1]

	_, bump, err := GetAuthorityAddress(program)
	if err != nil {
		return errors.Wrap(err, "failed to derive authority address")
	}

	// Failures from the delegated allocation are surfaced to the caller
	// without wrapping.
	err = p.invoker.InvokeSigned(
		system.Allocate(allocated.Key, AllocatedSize),
		[]*solana.AccountInfo{
			target,
			allocated,
		},
		[][]byte{program, {bump}},
	)
	if err != nil {
		return err
	}

	return p.incrementCounter(program, target)
}

// todo: transfer semantics haven't been defined for this example, so the
// instruction is accepted and nothing is touched.
func (p *Processor) processTransfer(program ed25519.PublicKey, accounts []*solana.AccountInfo, amount uint64) error {
	return nil
}

func (p *Processor) incrementCounter(program ed25519.PublicKey, target *solana.AccountInfo) error {
	// Only accounts owned by this program may have their records mutated.
	if !bytes.Equal(target.Owner, program) {
		return solana.ErrIncorrectProgram
	}

	var state CounterAccount
	if err := state.Unmarshal(target.Data); err != nil {
		return err
	}

	state.Counter += 1

	if err := state.Marshal(target.Data); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"account": base58.Encode(target.Key),
		"counter": state.Counter,
	}).Info("incremented counter")

	return nil
}
