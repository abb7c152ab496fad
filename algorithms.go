package arrayhash

import (
	"github.com/Hades210/arrayhash/hashfunc"
	"github.com/Hades210/arrayhash/internal/hash"
)

// NewCRC32HashAlgorithm - Returns the default hash capability, generating hash values with
// crc32.ChecksumIEEE. This is the capability a nil Conf.HashAlgorithm resolves to.
func NewCRC32HashAlgorithm() hashfunc.HashAlgorithm {
	return hash.NewCRC32HashAlgorithm()
}

// NewSHA256HashAlgorithm - Returns an alternative hash capability with much stronger distribution
// guarantees than the default CRC32 one, at a higher cost per key. Pass it in Conf.HashAlgorithm
// when keys are adversarial or known to collide badly under CRC32.
func NewSHA256HashAlgorithm() hashfunc.HashAlgorithm {
	return hash.NewSHA256HashAlgorithm()
}

// NewByteCompare - Returns the default equality capability, comparing keys byte by byte. This is
// the capability a nil Conf.KeyCompare resolves to.
func NewByteCompare() hashfunc.KeyCompare {
	return hash.NewByteCompare()
}
