package counter

import (
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/code-payments/example-program/pkg/solana"
)

const (
	// CounterAccountSize is the size of the Borsh-encoded record. The record
	// sits at the start of the account's allocation, which may be larger.
	CounterAccountSize = 4 // counter

	// AllocatedSize is the amount of account data the cross program invoke
	// requests from the system program.
	AllocatedSize = 42
)

// CounterAccount is the state persisted in accounts owned by this program.
type CounterAccount struct {
	// Counter only ever increases, by exactly one per successful
	// processing call that targets the account.
	Counter uint32
}

func (obj *CounterAccount) Marshal(dst []byte) error {
	if len(dst) < CounterAccountSize {
		return solana.ErrAccountDataTooSmall
	}

	data, err := borsh.Serialize(*obj)
	if err != nil {
		return errors.Wrap(err, "failed to serialize counter account")
	}
	copy(dst, data)

	return nil
}

func (obj *CounterAccount) Unmarshal(data []byte) error {
	if len(data) < CounterAccountSize {
		return solana.ErrAccountDataTooSmall
	}

	if err := borsh.Deserialize(obj, data); err != nil {
		return errors.Wrap(err, "failed to deserialize counter account")
	}

	return nil
}
