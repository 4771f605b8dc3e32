package sandbox

// Rent parameters, matching the runtime defaults.
//
// Reference: https://github.com/solana-labs/solana/blob/master/sdk/program/src/rent.rs
const (
	accountStorageOverhead  = 128
	lamportsPerByteYear     = 3480
	exemptionThresholdYears = 2
)

// RentExemptMinimum returns the lamport balance an account of the given data
// size must hold to be exempt from rent collection. Allocations below this
// balance are rejected.
func RentExemptMinimum(size uint64) uint64 {
	return (accountStorageOverhead + size) * lamportsPerByteYear * exemptionThresholdYears
}
