package arrayhash

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Hades210/arrayhash/internal/model"
	"github.com/Hades210/arrayhash/internal/storage"
)

// rebuild - The rehash engine. It asks the growth policy for a bucket count covering
// minBucketCount, builds a fresh bucket store and index table by re-inserting every live key in
// current index order, and atomically replaces the old pair with the new one. No partially
// rehashed state is ever observable: every ceiling is validated before the first byte is copied,
// and a failure leaves the set completely unchanged.
//
// The rebuild transiently holds the old and the new store at once, trading peak memory for the
// all-or-nothing guarantee.
func (S *ArraySet) rebuild(minBucketCount int) (err error) {
	if minBucketCount < 0 {
		// A doubling request can only get here through arithmetic overflow at the policy ceiling.
		err = CapacityExceeded{msg: "requested bucket count overflows the addressable range"}
		return
	}

	bucketCount, err := S.growthPolicy.BucketCountFor(minBucketCount)
	if err != nil {
		return errors.Wrap(err, "choosing new bucket count")
	}
	if uint64(bucketCount) > S.maxSize {
		err = CapacityExceeded{msg: fmt.Sprintf("bucket count %d exceeds index width ceiling %d", bucketCount, S.maxSize)}
		return
	}

	newStore := storage.NewPackedBuckets(bucketCount, S.storeConf)
	newIndex := storage.NewIndexTable(S.index.Len())

	for pos := 0; pos < S.index.Len(); pos++ {
		loc := S.index.At(pos)
		key := S.store.KeyAt(loc.Bucket, loc.Offset)
		bucketNo := S.growthPolicy.BucketIndex(S.hashAlgorithm.Hash(key), bucketCount)
		offset := newStore.Append(bucketNo, key)
		newIndex.Append(model.Locator{Bucket: bucketNo, Offset: offset})
	}

	S.store = newStore
	S.index = newIndex

	if S.logger != nil {
		S.logger.WithFields(logrus.Fields{
			"buckets":  bucketCount,
			"elements": newIndex.Len(),
		}).Debug("rehashed array set")
	}

	return
}

// minBucketsFor - Returns the smallest bucket count that fits elementCount elements under the
// current load factor ceiling
func (S *ArraySet) minBucketsFor(elementCount int) int {
	return int(math.Ceil(float64(elementCount) / S.maxLoadFactor))
}

// Rehash - Rebuilds the set with at least bucketCount buckets, never fewer than needed for the
// current element count under the load factor ceiling. Every outstanding iterator is invalidated.
//
// It returns:
//   - err which is an InvalidArgument error for a negative request, or a CapacityExceeded error if
//     the resulting bucket count would exceed a ceiling, in which case the set is left unchanged
func (S *ArraySet) Rehash(bucketCount int) (err error) {
	if bucketCount < 0 {
		err = InvalidArgument{msg: fmt.Sprintf("bucket count must not be negative, got %d", bucketCount)}
		return
	}

	if needed := S.minBucketsFor(S.index.Len()); bucketCount < needed {
		bucketCount = needed
	}

	return S.rebuild(bucketCount)
}

// Reserve - Grows the set so that elementCount elements fit without exceeding the load factor
// ceiling. Reserve never shrinks, a current bucket count that already suffices is kept as is.
// Outstanding iterators must be treated as invalidated by any Reserve call.
//
// It returns:
//   - err which is an InvalidArgument error for a negative request, or a CapacityExceeded error if
//     the resulting bucket count would exceed a ceiling, in which case the set is left unchanged
func (S *ArraySet) Reserve(elementCount int) (err error) {
	if elementCount < 0 {
		err = InvalidArgument{msg: fmt.Sprintf("element count must not be negative, got %d", elementCount)}
		return
	}

	if uint64(elementCount) > S.maxSize {
		err = CapacityExceeded{msg: fmt.Sprintf("element count %d exceeds max size %d", elementCount, S.maxSize)}
		return
	}

	needed := S.minBucketsFor(elementCount)
	if needed <= S.store.BucketCount() {
		return
	}

	return S.rebuild(needed)
}

// ShrinkToFit - Rebuilds the set at the minimum bucket count that fits the current element count
// under the load factor ceiling. The rebuild happens even if the resulting bucket count is
// unchanged, so every outstanding iterator is invalidated in all cases.
func (S *ArraySet) ShrinkToFit() (err error) {
	return S.rebuild(S.minBucketsFor(S.index.Len()))
}
