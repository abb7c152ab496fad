package storage

import (
	"github.com/Hades210/arrayhash/hashfunc"
	"github.com/Hades210/arrayhash/internal/model"
)

// PackedBuckets - Represents the bucket store: an ordered sequence of independently owned byte
// buffers where each buffer packs zero or more size-prefixed key records contiguously, in arrival
// order and with no padding. Record count per bucket is not stored anywhere, it is derived by
// walking records from offset 0 using each record's size field.
//
// Keeping colliding keys adjacent in one buffer instead of in separately allocated nodes is the
// whole point of the store: one allocation per bucket and cache friendly scans. The tradeoff is
// that removing a record costs a byte shift over the rest of its bucket.
type PackedBuckets struct {
	buckets      [][]byte
	keySizeWidth int
	terminator   bool
}

// NewPackedBuckets - Returns a pointer to a new PackedBuckets instance with bucketCount empty buckets
//   - bucketCount is the number of buckets to hold, it is fixed for the lifetime of the instance
//   - conf is a model.StoreConf struct with the record framing parameters
func NewPackedBuckets(bucketCount int, conf model.StoreConf) *PackedBuckets {
	return &PackedBuckets{
		buckets:      make([][]byte, bucketCount),
		keySizeWidth: conf.KeySizeWidth,
		terminator:   conf.StoreTerminator,
	}
}

// BucketCount - Returns the number of buckets in the store
func (P *PackedBuckets) BucketCount() int {
	return len(P.buckets)
}

// BucketLen - Returns the logical byte length of the given bucket's buffer
func (P *PackedBuckets) BucketLen(bucketNo int) int {
	return len(P.buckets[bucketNo])
}

// recordLength - Returns the number of bytes a record holding a key of keyLen bytes occupies
func (P *PackedBuckets) recordLength(keyLen int) int {
	n := P.keySizeWidth + keyLen
	if P.terminator {
		n++
	}
	return n
}

// Append - Appends a size-prefixed (and optionally terminated) record holding key to the given
// bucket, growing the buffer geometrically if its capacity is insufficient.
//
// It returns:
//   - offset which is the byte offset within the bucket where the new record starts
func (P *PackedBuckets) Append(bucketNo int, key []byte) (offset int) {
	buf := P.buckets[bucketNo]
	offset = len(buf)

	if need := offset + P.recordLength(len(key)); need > cap(buf) {
		newCap := cap(buf) * 2
		if newCap < need {
			newCap = need
		}
		grown := make([]byte, offset, newCap)
		copy(grown, buf)
		buf = grown
	}

	var sizeField [4]byte
	putKeySize(sizeField[:], P.keySizeWidth, len(key))
	buf = append(buf, sizeField[:P.keySizeWidth]...)
	buf = append(buf, key...)
	if P.terminator {
		buf = append(buf, 0)
	}
	P.buckets[bucketNo] = buf

	return
}

// KeyAt - Returns the key bytes of the record starting at offset in the given bucket.
// The returned slice is a view into the bucket buffer, valid only until the next mutation of
// the store.
func (P *PackedBuckets) KeyAt(bucketNo, offset int) []byte {
	buf := P.buckets[bucketNo]
	size := getKeySize(buf[offset:], P.keySizeWidth)
	start := offset + P.keySizeWidth

	return buf[start : start+size : start+size]
}

// Walk - Walks the records of the given bucket from offset 0, deriving record boundaries from the
// size fields, and calls fn with each record's start offset and key bytes. If fn returns false the
// walk stops. The key slice passed to fn is a view into the bucket buffer.
func (P *PackedBuckets) Walk(bucketNo int, fn func(offset int, key []byte) bool) {
	buf := P.buckets[bucketNo]
	for offset := 0; offset < len(buf); {
		size := getKeySize(buf[offset:], P.keySizeWidth)
		start := offset + P.keySizeWidth
		if !fn(offset, buf[start:start+size:start+size]) {
			return
		}
		offset = start + size
		if P.terminator {
			offset++
		}
	}
}

// ScanFind - Walks the records of the given bucket comparing each key through the supplied equality
// capability. Cost is linear in bucket occupancy, not in table size.
//
// It returns:
//   - offset which is the start offset of the first matching record
//   - found which is false if no record in the bucket matches key
func (P *PackedBuckets) ScanFind(bucketNo int, key []byte, compare hashfunc.KeyCompare) (offset int, found bool) {
	P.Walk(bucketNo, func(off int, candidate []byte) bool {
		if compare.Equal(candidate, key) {
			offset = off
			found = true
			return false
		}
		return true
	})

	return
}

// ScanAll - Returns the start offsets of every record in the given bucket matching key. For the
// strict set configuration at most one record can match, but the scan is written for any number of
// matches so that multi-key configurations can reuse it.
func (P *PackedBuckets) ScanAll(bucketNo int, key []byte, compare hashfunc.KeyCompare) (offsets []int) {
	P.Walk(bucketNo, func(off int, candidate []byte) bool {
		if compare.Equal(candidate, key) {
			offsets = append(offsets, off)
		}
		return true
	})

	return
}

// Remove - Deletes the record starting at offset in the given bucket by shifting all subsequent
// bytes left and shrinking the buffer's logical length.
//
// It returns:
//   - removed which is the number of bytes spliced out, so the caller can repair locators that
//     addressed records after the removed region
func (P *PackedBuckets) Remove(bucketNo, offset int) (removed int) {
	buf := P.buckets[bucketNo]
	size := getKeySize(buf[offset:], P.keySizeWidth)
	removed = P.recordLength(size)

	P.buckets[bucketNo] = append(buf[:offset], buf[offset+removed:]...)

	return
}

// Clear - Releases all bucket buffer storage. The bucket count is kept.
func (P *PackedBuckets) Clear() {
	for i := range P.buckets {
		P.buckets[i] = nil
	}
}
