// Package arrayhash implements a cache-conscious hash set for byte string keys.
//
// Instead of allocating one node per key, colliding keys are packed into a single contiguous
// byte buffer per bucket as size-prefixed records. That keeps keys that hash together adjacent
// in memory and removes the per-key allocation of a conventional node-based set. A dense index
// of locators (bucket number plus byte offset) gives O(1) sequential iteration without scanning
// empty buckets.
//
// Iterator invalidation follows from the packed layout:
//   - Clear, Rehash, Reserve, ShrinkToFit and any erase always invalidate outstanding iterators.
//   - Insert only invalidates them if it triggers a rehash.
//
// The set performs no internal locking. Any mutating call requires exclusive external
// synchronization.
package arrayhash

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Hades210/arrayhash/hashfunc"
	"github.com/Hades210/arrayhash/internal/hash"
	"github.com/Hades210/arrayhash/internal/model"
	"github.com/Hades210/arrayhash/internal/storage"
)

const (
	// DefaultInitialBucketCount - Bucket count used when Conf leaves InitialBucketCount at zero
	DefaultInitialBucketCount = 32

	// DefaultMaxLoadFactor - Load factor ceiling used when Conf leaves MaxLoadFactor at zero
	DefaultMaxLoadFactor = 1.0

	// DefaultKeySizeWidth - Width in bytes of the per-record key size field when Conf leaves
	// KeySizeWidth at zero. Two bytes bounds the key length to 65535 bytes.
	DefaultKeySizeWidth = 2

	// DefaultIndexWidth - Width in bytes bounding the element count when Conf leaves IndexWidth
	// at zero. Four bytes bounds the set to 4294967296 elements.
	DefaultIndexWidth = 4
)

// Conf - Is a struct to be passed in the call to NewArraySet and contains configuration that
// affects record framing, capacity ceilings and the capabilities the set uses.
//   - InitialBucketCount is the minimum number of buckets to start out with, 0 means DefaultInitialBucketCount
//   - MaxLoadFactor is the load factor ceiling above which an insert triggers a rehash, 0 means DefaultMaxLoadFactor
//   - KeySizeWidth is the width in bytes (1, 2 or 4) of the key size field, 0 means DefaultKeySizeWidth
//   - IndexWidth is the width in bytes (2, 4 or 8) bounding the element count, 0 means DefaultIndexWidth
//   - NoTerminator suppresses the single zero byte otherwise stored after each key's bytes
//   - HashAlgorithm is an optional custom hash capability, nil means the CRC32 algorithm from
//     NewCRC32HashAlgorithm, NewSHA256HashAlgorithm provides a stronger built in alternative
//   - KeyCompare is an optional custom equality capability, nil means plain byte comparison
//   - GrowthPolicy is an optional custom growth policy, nil means the power-of-two policy
//   - Logger is an optional logrus logger receiving debug events on rehash and clear, nil disables them
type Conf struct {
	InitialBucketCount int
	MaxLoadFactor      float64
	KeySizeWidth       int
	IndexWidth         int
	NoTerminator       bool
	HashAlgorithm      hashfunc.HashAlgorithm
	KeyCompare         hashfunc.KeyCompare
	GrowthPolicy       hashfunc.GrowthPolicy
	Logger             *logrus.Logger
}

// ArraySet - The main implementation struct, a hash set of byte string keys over packed bucket
// storage. The zero value is not usable, use NewArraySet or New.
type ArraySet struct {
	store         *storage.PackedBuckets
	index         *storage.IndexTable
	hashAlgorithm hashfunc.HashAlgorithm
	keyCompare    hashfunc.KeyCompare
	growthPolicy  hashfunc.GrowthPolicy
	maxLoadFactor float64
	maxKeySize    int
	maxSize       uint64
	storeConf     model.StoreConf
	logger        *logrus.Logger
}

// New - Returns a new ArraySet with default configuration
func New() *ArraySet {
	set, _ := NewArraySet(Conf{})
	return set
}

// NewArraySet - Returns a new ArraySet prepared according to conf. Zero valued conf fields are
// replaced by defaults and nil capabilities by the internal implementations.
//
// It returns:
//   - set which is a pointer to the created instance
//   - err which is an InvalidArgument error if conf holds a rejected value, or a CapacityExceeded
//     error if the initial bucket count is not satisfiable
func NewArraySet(conf Conf) (set *ArraySet, err error) {
	if conf.InitialBucketCount < 0 {
		err = InvalidArgument{msg: fmt.Sprintf("initial bucket count must not be negative, got %d", conf.InitialBucketCount)}
		return
	}
	if conf.InitialBucketCount == 0 {
		conf.InitialBucketCount = DefaultInitialBucketCount
	}

	if conf.MaxLoadFactor < 0 || math.IsNaN(conf.MaxLoadFactor) {
		err = InvalidArgument{msg: fmt.Sprintf("max load factor must be a positive value, got %f", conf.MaxLoadFactor)}
		return
	}
	if conf.MaxLoadFactor == 0 {
		conf.MaxLoadFactor = DefaultMaxLoadFactor
	}

	switch conf.KeySizeWidth {
	case 0:
		conf.KeySizeWidth = DefaultKeySizeWidth
	case 1, 2, 4:
	default:
		err = InvalidArgument{msg: fmt.Sprintf("key size width must be 1, 2 or 4 bytes, got %d", conf.KeySizeWidth)}
		return
	}

	switch conf.IndexWidth {
	case 0:
		conf.IndexWidth = DefaultIndexWidth
	case 2, 4, 8:
	default:
		err = InvalidArgument{msg: fmt.Sprintf("index width must be 2, 4 or 8 bytes, got %d", conf.IndexWidth)}
		return
	}

	if conf.HashAlgorithm == nil {
		conf.HashAlgorithm = hash.NewCRC32HashAlgorithm()
	}
	if conf.KeyCompare == nil {
		conf.KeyCompare = hash.NewByteCompare()
	}
	if conf.GrowthPolicy == nil {
		conf.GrowthPolicy = NewPowerOfTwoGrowthPolicy()
	}

	bucketCount, err := conf.GrowthPolicy.BucketCountFor(conf.InitialBucketCount)
	if err != nil {
		return
	}

	maxSize := maxSizeFor(conf.IndexWidth)
	if uint64(bucketCount) > maxSize {
		err = CapacityExceeded{msg: fmt.Sprintf("bucket count %d exceeds index width ceiling %d", bucketCount, maxSize)}
		return
	}

	storeConf := model.StoreConf{
		KeySizeWidth:    conf.KeySizeWidth,
		StoreTerminator: !conf.NoTerminator,
	}

	set = &ArraySet{
		store:         storage.NewPackedBuckets(bucketCount, storeConf),
		index:         storage.NewIndexTable(0),
		hashAlgorithm: conf.HashAlgorithm,
		keyCompare:    conf.KeyCompare,
		growthPolicy:  conf.GrowthPolicy,
		maxLoadFactor: conf.MaxLoadFactor,
		maxKeySize:    maxKeySizeFor(conf.KeySizeWidth),
		maxSize:       maxSize,
		storeConf:     storeConf,
		logger:        conf.Logger,
	}

	return
}

// maxKeySizeFor - Returns the highest key length a size field of the given width can represent
func maxKeySizeFor(keySizeWidth int) int {
	return 1<<(8*keySizeWidth) - 1
}

// maxSizeFor - Returns the element count ceiling for the given index width
func maxSizeFor(indexWidth int) uint64 {
	if indexWidth >= 8 {
		return math.MaxUint64
	}
	return 1 << (8 * indexWidth)
}

// Size - Returns the number of keys in the set
func (S *ArraySet) Size() int {
	return S.index.Len()
}

// Empty - Returns true if the set holds no keys
func (S *ArraySet) Empty() bool {
	return S.index.Len() == 0
}

// BucketCount - Returns the current number of buckets
func (S *ArraySet) BucketCount() int {
	return S.store.BucketCount()
}

// MaxBucketCount - Returns the highest bucket count this instance can ever grow to, the lower of
// the growth policy ceiling and the configured index width ceiling
func (S *ArraySet) MaxBucketCount() int {
	maxBucketCount := S.growthPolicy.MaxBucketCount()
	if S.maxSize < uint64(maxBucketCount) {
		maxBucketCount = int(S.maxSize)
	}
	return maxBucketCount
}

// MaxSize - Returns the highest number of keys the set can hold given the configured index width
func (S *ArraySet) MaxSize() uint64 {
	return S.maxSize
}

// MaxKeySize - Returns the highest key length in bytes the configured key size field width can
// represent
func (S *ArraySet) MaxKeySize() int {
	return S.maxKeySize
}

// LoadFactor - Returns the current load factor, element count divided by bucket count
func (S *ArraySet) LoadFactor() float64 {
	return float64(S.index.Len()) / float64(S.store.BucketCount())
}

// MaxLoadFactor - Returns the load factor ceiling above which an insert triggers a rehash
func (S *ArraySet) MaxLoadFactor() float64 {
	return S.maxLoadFactor
}

// SetMaxLoadFactor - Sets the load factor ceiling. The new ceiling takes effect on the next insert,
// no immediate rehash is performed.
//
// It returns:
//   - err which is an InvalidArgument error if maxLoadFactor is not a positive value
func (S *ArraySet) SetMaxLoadFactor(maxLoadFactor float64) (err error) {
	if maxLoadFactor <= 0 || math.IsNaN(maxLoadFactor) {
		err = InvalidArgument{msg: fmt.Sprintf("max load factor must be a positive value, got %f", maxLoadFactor)}
		return
	}

	S.maxLoadFactor = maxLoadFactor

	return
}

// HashFunction - Returns the hash capability in use
func (S *ArraySet) HashFunction() hashfunc.HashAlgorithm {
	return S.hashAlgorithm
}

// KeyEq - Returns the equality capability in use
func (S *ArraySet) KeyEq() hashfunc.KeyCompare {
	return S.keyCompare
}
