package counter

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/example-program/pkg/solana"
	"github.com/code-payments/example-program/pkg/testutil"
)

func TestUnpackInstruction(t *testing.T) {
	amount := make([]byte, 8)
	binary.LittleEndian.PutUint64(amount, 0xdeadbeefcafe)

	decoded, err := UnpackInstruction(append([]byte{0}, amount...))
	require.NoError(t, err)
	assert.Equal(t, InstructionExample, decoded.Type)
	assert.EqualValues(t, 0xdeadbeefcafe, decoded.Amount)

	decoded, err = UnpackInstruction([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, InstructionCrossProgramInvoke, decoded.Type)

	decoded, err = UnpackInstruction(append([]byte{2}, amount...))
	require.NoError(t, err)
	assert.Equal(t, InstructionTransfer, decoded.Type)
	assert.EqualValues(t, 0xdeadbeefcafe, decoded.Amount)

	// Trailing bytes beyond the amount are ignored.
	decoded, err = UnpackInstruction(append(append([]byte{0}, amount...), 0xff, 0xff))
	require.NoError(t, err)
	assert.EqualValues(t, 0xdeadbeefcafe, decoded.Amount)
}

func TestUnpackInstruction_Invalid(t *testing.T) {
	_, err := UnpackInstruction(nil)
	assert.Equal(t, solana.ErrInvalidInstructionData, err)

	_, err = UnpackInstruction([]byte{})
	assert.Equal(t, solana.ErrInvalidInstructionData, err)

	// Truncated amounts for the tags that require one.
	for _, tag := range []byte{0, 2} {
		for i := 0; i < 8; i++ {
			_, err = UnpackInstruction(append([]byte{tag}, make([]byte, i)...))
			assert.Equal(t, solana.ErrInvalidInstructionData, err)
		}
	}

	// Unrecognized tags fail regardless of what follows.
	for _, tag := range []byte{3, 4, 0x7f, 0xff} {
		_, err = UnpackInstruction([]byte{tag})
		assert.Equal(t, solana.ErrInvalidInstructionData, err)

		_, err = UnpackInstruction(append([]byte{tag}, make([]byte, 8)...))
		assert.Equal(t, solana.ErrInvalidInstructionData, err)
	}
}

func TestNewExampleInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	program, target := keys[0], keys[1]

	instruction := NewExampleInstruction(
		program,
		&ExampleInstructionAccounts{
			Counter: target,
		},
		&ExampleInstructionArgs{
			Amount: 12345,
		},
	)

	assert.EqualValues(t, program, instruction.Program)

	require.Len(t, instruction.Data, 9)
	assert.EqualValues(t, 0, instruction.Data[0])
	assert.EqualValues(t, 12345, binary.LittleEndian.Uint64(instruction.Data[1:]))

	require.Len(t, instruction.Accounts, 1)
	assert.EqualValues(t, target, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)

	decoded, err := UnpackInstruction(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, InstructionExample, decoded.Type)
	assert.EqualValues(t, 12345, decoded.Amount)
}

func TestNewCrossProgramInvokeInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	program, target, allocated := keys[0], keys[1], keys[2]

	instruction := NewCrossProgramInvokeInstruction(
		program,
		&CrossProgramInvokeInstructionAccounts{
			Counter:   target,
			Allocated: allocated,
		},
	)

	assert.EqualValues(t, program, instruction.Program)
	assert.Equal(t, []byte{1}, instruction.Data)

	require.Len(t, instruction.Accounts, 2)
	assert.EqualValues(t, target, instruction.Accounts[0].PublicKey)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.EqualValues(t, allocated, instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsSigner)

	decoded, err := UnpackInstruction(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, InstructionCrossProgramInvoke, decoded.Type)
}

func TestNewTransferInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	program, target := keys[0], keys[1]

	instruction := NewTransferInstruction(
		program,
		&TransferInstructionAccounts{
			Counter: target,
		},
		&TransferInstructionArgs{
			Amount: 999,
		},
	)

	require.Len(t, instruction.Data, 9)
	assert.EqualValues(t, 2, instruction.Data[0])
	assert.EqualValues(t, 999, binary.LittleEndian.Uint64(instruction.Data[1:]))

	decoded, err := UnpackInstruction(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, InstructionTransfer, decoded.Type)
	assert.EqualValues(t, 999, decoded.Amount)
}
