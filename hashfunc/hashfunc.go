package hashfunc

// HashAlgorithm - Interface that permits an implementation using the ArraySet to supply a custom hash
// algorithm suited for its particular distribution of keys.
type HashAlgorithm interface {
	// Hash - Given key it generates a hash value that is used for bucket selection.
	// The same key must always generate the same hash value for the lifetime of a set instance,
	// otherwise records will end up unreachable after a rehash.
	Hash(key []byte) uint64
}

// KeyCompare - Interface that permits an implementation using the ArraySet to supply a custom equality
// capability deciding whether two keys are to be considered the same.
// Any two keys for which Equal returns true must also hash to the same value through the
// HashAlgorithm in use, otherwise lookups will miss records that are present.
type KeyCompare interface {
	// Equal - Returns true if a and b are to be considered the same key
	Equal(a, b []byte) bool
}

// GrowthPolicy - Interface for the strategy that maps hash values to bucket numbers and that chooses
// an actual bucket count when the set is created, grows or is explicitly resized.
type GrowthPolicy interface {
	// BucketIndex - Given a hash value and the current number of buckets it returns the bucket number
	// the key belongs to.
	// Any number returned outside the range 0 -> bucketCount - 1 will result in corrupt bucket
	// addressing down stream.
	BucketIndex(hash uint64, bucketCount int) int

	// BucketCountFor - Returns the actual number of buckets to allocate so that at least
	// minBucketCount buckets are available. A requested count of 0 must still yield at least
	// one bucket.
	//
	// It returns an error if the requested count can not be satisfied by the policy.
	BucketCountFor(minBucketCount int) (int, error)

	// MaxBucketCount - Returns the highest bucket count the policy can ever address
	MaxBucketCount() int
}
