package arrayhash

import "github.com/Hades210/arrayhash/internal/model"

// Iterator - Opaque handle addressing one live key record by its position in the bucket storage.
// Iterators are copyable and comparable with ==, which compares position identity, not key
// content. The zero value is the distinguished not-found iterator.
//
// An iterator never holds key bytes itself, it resolves them lazily against the owning set on each
// Key call. Any structural mutation of the set - erase, clear, rehash, reserve, shrink to fit -
// invalidates all outstanding iterators. An insert that does not trigger a rehash does not.
type Iterator struct {
	set *ArraySet
	loc model.Locator
	ok  bool
}

// Valid - Returns true if the iterator addresses a record, false for the not-found iterator
func (I Iterator) Valid() bool {
	return I.ok
}

// Key - Resolves the iterator against its owning set and returns the key bytes of the record it
// addresses, or nil for the not-found iterator. The returned slice is a view into bucket storage,
// valid only until the next structural mutation of the set.
func (I Iterator) Key() []byte {
	if !I.ok {
		return nil
	}
	return I.set.store.KeyAt(I.loc.Bucket, I.loc.Offset)
}

// All - Calls yield sequentially for each key in the set, in index table order, which equals
// insertion order until the first erase. If yield returns false the iteration stops. The sequence
// is read live from the index table, restarting simply means calling All again.
//
// The key slices passed to yield are views into bucket storage, valid only until the next
// structural mutation. The set must not be mutated during the iteration.
func (S *ArraySet) All(yield func(key []byte) bool) {
	for pos := 0; pos < S.index.Len(); pos++ {
		loc := S.index.At(pos)
		if !yield(S.store.KeyAt(loc.Bucket, loc.Offset)) {
			return
		}
	}
}
