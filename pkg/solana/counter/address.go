package counter

import (
	"crypto/ed25519"

	"github.com/code-payments/example-program/pkg/solana"
)

// GetAuthorityAddress derives the program's signing authority and its bump
// seed. The only seed is the program id's own raw bytes, so any
// implementation of the derivation algorithm arrives at the same pair.
func GetAuthorityAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		program,
	)
}
