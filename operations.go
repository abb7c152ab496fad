package arrayhash

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Hades210/arrayhash/internal/model"
)

// Insert - Adds key to the set unless an equal key is already present. The key bytes are copied
// into the bucket storage, the caller's slice is not retained.
//
// A successful insert may trigger a rehash when the post-insert load factor would exceed the
// ceiling, in which case outstanding iterators are invalidated. An insert that does not rehash
// leaves outstanding iterators valid.
//
// It returns:
//   - it which is an iterator addressing the inserted record, or the already present equal record
//   - inserted which is false if an equal key was already present and no mutation took place
//   - err which is a CapacityExceeded error if the key length or element count ceiling would be
//     exceeded, in which case the set is left in its exact prior state
func (S *ArraySet) Insert(key []byte) (it Iterator, inserted bool, err error) {
	if len(key) > S.maxKeySize {
		err = CapacityExceeded{msg: fmt.Sprintf("key length %d exceeds max key size %d", len(key), S.maxKeySize)}
		return
	}

	hashValue := S.hashAlgorithm.Hash(key)
	bucketNo := S.growthPolicy.BucketIndex(hashValue, S.store.BucketCount())

	if offset, found := S.store.ScanFind(bucketNo, key, S.keyCompare); found {
		it = Iterator{set: S, loc: model.Locator{Bucket: bucketNo, Offset: offset}, ok: true}
		return
	}

	if uint64(S.index.Len())+1 > S.maxSize {
		err = CapacityExceeded{msg: fmt.Sprintf("element count would exceed max size %d", S.maxSize)}
		return
	}

	// All ceilings are validated and the rehash, if one is needed, runs before any bytes are
	// appended. A failed insert therefore never leaves a partial record or locator behind.
	if float64(S.index.Len()+1)/float64(S.store.BucketCount()) > S.maxLoadFactor {
		if err = S.rebuild(S.store.BucketCount() * 2); err != nil {
			err = errors.Wrap(err, "growing for insert")
			return
		}
		bucketNo = S.growthPolicy.BucketIndex(hashValue, S.store.BucketCount())
	}

	offset := S.store.Append(bucketNo, key)
	S.index.Append(model.Locator{Bucket: bucketNo, Offset: offset})

	it = Iterator{set: S, loc: model.Locator{Bucket: bucketNo, Offset: offset}, ok: true}
	inserted = true

	return
}

// InsertAll - Adds every given key to the set, reserving bucket capacity for all of them up front.
// Keys already present are skipped. Insertion stops at the first error, keys inserted up to that
// point remain in the set.
func (S *ArraySet) InsertAll(keys ...[]byte) (err error) {
	if err = S.Reserve(S.index.Len() + len(keys)); err != nil {
		return errors.Wrap(err, "reserving for bulk insert")
	}

	for _, key := range keys {
		if _, _, err = S.Insert(key); err != nil {
			return
		}
	}

	return
}

// Find - Looks key up in the set.
//
// It returns:
//   - it which is an iterator addressing the matching record
//   - found which is false if no equal key is present, a normal result and not an error
func (S *ArraySet) Find(key []byte) (it Iterator, found bool) {
	hashValue := S.hashAlgorithm.Hash(key)
	bucketNo := S.growthPolicy.BucketIndex(hashValue, S.store.BucketCount())

	offset, found := S.store.ScanFind(bucketNo, key, S.keyCompare)
	if !found {
		return
	}

	it = Iterator{set: S, loc: model.Locator{Bucket: bucketNo, Offset: offset}, ok: true}

	return
}

// Count - Returns the number of records equal to key, which is 0 or 1 for this strict set
// configuration. The underlying scan counts any number of matches so that multi-key
// configurations can reuse it.
func (S *ArraySet) Count(key []byte) int {
	hashValue := S.hashAlgorithm.Hash(key)
	bucketNo := S.growthPolicy.BucketIndex(hashValue, S.store.BucketCount())

	return len(S.store.ScanAll(bucketNo, key, S.keyCompare))
}

// EqualRange - Returns iterators addressing every record equal to key, at most one for this strict
// set configuration and an empty slice when the key is absent.
func (S *ArraySet) EqualRange(key []byte) (its []Iterator) {
	hashValue := S.hashAlgorithm.Hash(key)
	bucketNo := S.growthPolicy.BucketIndex(hashValue, S.store.BucketCount())

	for _, offset := range S.store.ScanAll(bucketNo, key, S.keyCompare) {
		its = append(its, Iterator{set: S, loc: model.Locator{Bucket: bucketNo, Offset: offset}, ok: true})
	}

	return
}

// Erase - Removes the record addressed by it. Every outstanding iterator, including it itself, is
// invalidated.
//
// It returns:
//   - err which is an InvalidArgument error if it does not address a live record of this set
func (S *ArraySet) Erase(it Iterator) (err error) {
	if !it.ok || it.set != S {
		err = InvalidArgument{msg: "iterator does not belong to this set"}
		return
	}

	pos, found := S.index.PosOf(it.loc)
	if !found {
		err = InvalidArgument{msg: "iterator does not address a live record"}
		return
	}

	S.eraseAt(pos)

	return
}

// EraseKey - Removes every record equal to key, which is at most one for this strict set
// configuration. Every outstanding iterator is invalidated if anything was removed.
//
// It returns:
//   - removed which is the number of records removed, 0 if the key was absent
func (S *ArraySet) EraseKey(key []byte) (removed int) {
	hashValue := S.hashAlgorithm.Hash(key)

	for {
		bucketNo := S.growthPolicy.BucketIndex(hashValue, S.store.BucketCount())
		offset, found := S.store.ScanFind(bucketNo, key, S.keyCompare)
		if !found {
			return
		}

		pos, found := S.index.PosOf(model.Locator{Bucket: bucketNo, Offset: offset})
		if !found {
			// Every record the store holds has a locator, a miss here means corrupt state.
			return
		}
		S.eraseAt(pos)
		removed++
	}
}

// eraseAt - Removes the record addressed by the locator at index position pos: the record bytes are
// spliced out of their bucket, locators pointing past the removed region in that bucket are shifted
// back, and the index slot is removed by swap with the last live slot.
func (S *ArraySet) eraseAt(pos int) {
	loc := S.index.At(pos)
	removed := S.store.Remove(loc.Bucket, loc.Offset)
	S.index.ShiftOffsets(loc.Bucket, loc.Offset, removed)
	S.index.RemoveAt(pos)
}

// Clear - Removes all keys and releases all bucket buffer storage. The bucket count is kept.
// Every outstanding iterator is invalidated.
func (S *ArraySet) Clear() {
	S.store.Clear()
	S.index.Clear()

	if S.logger != nil {
		S.logger.WithField("buckets", S.store.BucketCount()).Debug("cleared array set")
	}
}

// Swap - Exchanges the complete contents, configuration and capabilities of S and other in constant
// time. Both instances remain independently valid. Iterators obtained before the swap keep
// addressing the instance they were obtained from and therefore see the swapped-in contents.
func (S *ArraySet) Swap(other *ArraySet) {
	*S, *other = *other, *S
}

// Equal - Returns true if S and other hold equal element counts and every key of S is found in
// other. The check is O(n) membership and independent of physical bucket layout, two equal sets
// need not share bucket counts or capabilities.
func (S *ArraySet) Equal(other *ArraySet) bool {
	if other == nil || S.index.Len() != other.index.Len() {
		return false
	}

	equal := true
	S.All(func(key []byte) bool {
		if _, found := other.Find(key); !found {
			equal = false
			return false
		}
		return true
	})

	return equal
}
