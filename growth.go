package arrayhash

import (
	"fmt"
	"math"
)

// maxPowerOfTwo is the largest power of two an int can hold on the current platform.
const maxPowerOfTwo = math.MaxInt>>1 + 1

// PowerOfTwoGrowthPolicy - The default growth policy. It keeps the bucket count a power of two,
// which makes bucket selection a single mask operation, bucket = hash & (bucketCount - 1), and
// growth a doubling of the bucket count until the requested minimum is covered.
type PowerOfTwoGrowthPolicy struct {
	maxBucketCount int
}

// NewPowerOfTwoGrowthPolicy - Returns a pointer to a new PowerOfTwoGrowthPolicy instance
func NewPowerOfTwoGrowthPolicy() *PowerOfTwoGrowthPolicy {
	return &PowerOfTwoGrowthPolicy{maxBucketCount: maxPowerOfTwo}
}

// BucketIndex - Given a hash value and the current number of buckets it returns the bucket number
// the key belongs to. The bucket count must be a power of two as produced by BucketCountFor.
func (G *PowerOfTwoGrowthPolicy) BucketIndex(hash uint64, bucketCount int) int {
	return int(hash & uint64(bucketCount-1))
}

// BucketCountFor - Returns the smallest power of two that is at least minBucketCount. A requested
// count of 0 still yields one bucket.
//
// It returns:
//   - bucketCount which is the power of two to allocate
//   - err which is a CapacityExceeded error if the request is above the policy ceiling
func (G *PowerOfTwoGrowthPolicy) BucketCountFor(minBucketCount int) (bucketCount int, err error) {
	if minBucketCount > G.maxBucketCount {
		err = CapacityExceeded{msg: fmt.Sprintf("requested bucket count %d exceeds policy maximum %d", minBucketCount, G.maxBucketCount)}
		return
	}

	bucketCount = 1
	for bucketCount < minBucketCount {
		bucketCount <<= 1
	}

	return
}

// MaxBucketCount - Returns the highest bucket count the policy can ever address
func (G *PowerOfTwoGrowthPolicy) MaxBucketCount() int {
	return G.maxBucketCount
}
