package hash

import (
	"encoding/binary"
	"hash/crc32"

	sha256 "github.com/minio/sha256-simd"

	"github.com/Hades210/arrayhash/internal/utils"
)

// CRC32HashAlgorithm - The internally used hash algorithm is implemented using crc32.ChecksumIEEE to
// create a hash value over the key. Bucket selection from the hash value is the responsibility of
// the growth policy and not part of this algorithm.
type CRC32HashAlgorithm struct{}

// NewCRC32HashAlgorithm - Returns a pointer to a new CRC32HashAlgorithm instance
func NewCRC32HashAlgorithm() *CRC32HashAlgorithm {
	return &CRC32HashAlgorithm{}
}

// Hash - Given key it generates a hash value over the key bytes
func (B *CRC32HashAlgorithm) Hash(key []byte) uint64 {
	return uint64(crc32.ChecksumIEEE(key))
}

// SHA256HashAlgorithm - An alternative hash algorithm with much stronger distribution guarantees than
// the default CRC32 one, at a higher cost per key. It can be chosen when keys are adversarial or
// known to collide badly under CRC32.
type SHA256HashAlgorithm struct{}

// NewSHA256HashAlgorithm - Returns a pointer to a new SHA256HashAlgorithm instance
func NewSHA256HashAlgorithm() *SHA256HashAlgorithm {
	return &SHA256HashAlgorithm{}
}

// Hash - Given key it generates a hash value from the first eight bytes of the SHA-256 sum of the key
func (B *SHA256HashAlgorithm) Hash(key []byte) uint64 {
	sum := sha256.Sum256(key)
	return binary.LittleEndian.Uint64(sum[:8])
}

// ByteCompare - The internally used equality capability, comparing keys byte by byte
type ByteCompare struct{}

// NewByteCompare - Returns a pointer to a new ByteCompare instance
func NewByteCompare() *ByteCompare {
	return &ByteCompare{}
}

// Equal - Returns true if a and b are equal both in size and contents
func (B *ByteCompare) Equal(a, b []byte) bool {
	return utils.IsEqual(a, b)
}
