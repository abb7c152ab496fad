//go:build unit

package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hades210/arrayhash/internal/hash"
	"github.com/Hades210/arrayhash/internal/model"
)

func TestPackedBuckets_Append(t *testing.T) {
	t.Run("appends size prefixed records for all supported widths", func(t *testing.T) {
		for _, width := range []int{1, 2, 4} {
			t.Run(fmt.Sprintf("width %d", width), func(t *testing.T) {
				// Prepare
				buckets := NewPackedBuckets(4, model.StoreConf{KeySizeWidth: width, StoreTerminator: true})

				// Execute
				offset1 := buckets.Append(0, []byte("alpha"))
				offset2 := buckets.Append(0, []byte("bb"))

				// Check
				assert.Equal(t, 0, offset1, "first record starts at offset zero")
				assert.Equal(t, width+len("alpha")+1, offset2, "second record starts after first record and terminator")
				assert.Equal(t, []byte("alpha"), buckets.KeyAt(0, offset1), "first key readable")
				assert.Equal(t, []byte("bb"), buckets.KeyAt(0, offset2), "second key readable")
			})
		}
	})

	t.Run("packs records without terminator when configured off", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: false})

		// Execute
		offset1 := buckets.Append(0, []byte("alpha"))
		offset2 := buckets.Append(0, []byte("bb"))

		// Check
		assert.Equal(t, 0, offset1, "first record at offset zero")
		assert.Equal(t, 2+len("alpha"), offset2, "second record directly after first key bytes")
		assert.Equal(t, 2+len("alpha")+2+len("bb"), buckets.BucketLen(0), "no padding between records")
	})

	t.Run("stores an empty key as a record of its own", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})

		// Execute
		offset := buckets.Append(0, []byte{})

		// Check
		assert.Equal(t, []byte{}, buckets.KeyAt(0, offset), "empty key round trips")
		assert.Equal(t, 3, buckets.BucketLen(0), "size field plus terminator only")
	})

	t.Run("keeps earlier keys intact while the buffer grows", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		keys := make([][]byte, 100)
		offsets := make([]int, 100)
		for i := range keys {
			keys[i] = []byte(fmt.Sprintf("key-%04d", i))
		}

		// Execute
		for i, key := range keys {
			offsets[i] = buckets.Append(0, key)
		}

		// Check
		for i, key := range keys {
			assert.Equal(t, key, buckets.KeyAt(0, offsets[i]), "key survived buffer growth")
		}
	})
}

func TestPackedBuckets_Walk(t *testing.T) {
	t.Run("derives record boundaries from the size fields", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		keys := [][]byte{[]byte("a"), []byte("bb"), []byte("ccc")}
		for _, key := range keys {
			buckets.Append(0, key)
		}

		// Execute
		var walked [][]byte
		buckets.Walk(0, func(offset int, key []byte) bool {
			walked = append(walked, append([]byte(nil), key...))
			return true
		})

		// Check
		assert.Equal(t, keys, walked, "records walked in arrival order")
	})

	t.Run("stops when fn returns false", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		buckets.Append(0, []byte("a"))
		buckets.Append(0, []byte("bb"))

		// Execute
		var visited int
		buckets.Walk(0, func(offset int, key []byte) bool {
			visited++
			return false
		})

		// Check
		assert.Equal(t, 1, visited, "walk stopped after first record")
	})
}

func TestPackedBuckets_ScanFind(t *testing.T) {
	t.Run("finds a record by key bytes", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		buckets.Append(0, []byte("a"))
		expected := buckets.Append(0, []byte("bb"))
		buckets.Append(0, []byte("ccc"))

		// Execute
		offset, found := buckets.ScanFind(0, []byte("bb"), hash.NewByteCompare())

		// Check
		assert.True(t, found, "record found")
		assert.Equal(t, expected, offset, "offset of matching record")
	})

	t.Run("reports not found for an absent key", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		buckets.Append(0, []byte("a"))

		// Execute
		_, found := buckets.ScanFind(0, []byte("absent"), hash.NewByteCompare())

		// Check
		assert.False(t, found, "absent key not found")
	})

	t.Run("reports not found in an empty bucket", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(2, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})

		// Execute
		_, found := buckets.ScanFind(1, []byte("a"), hash.NewByteCompare())

		// Check
		assert.False(t, found, "nothing to find")
	})
}

func TestPackedBuckets_ScanAll(t *testing.T) {
	t.Run("returns offsets of every matching record", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		offset1 := buckets.Append(0, []byte("dup"))
		buckets.Append(0, []byte("other"))
		offset2 := buckets.Append(0, []byte("dup"))

		// Execute
		offsets := buckets.ScanAll(0, []byte("dup"), hash.NewByteCompare())

		// Check
		assert.Equal(t, []int{offset1, offset2}, offsets, "both duplicates reported in arrival order")
	})
}

func TestPackedBuckets_Remove(t *testing.T) {
	t.Run("splices a record out and shifts trailing bytes left", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		buckets.Append(0, []byte("a"))
		offsetBB := buckets.Append(0, []byte("bb"))
		offsetCCC := buckets.Append(0, []byte("ccc"))
		lengthBefore := buckets.BucketLen(0)

		// Execute
		removed := buckets.Remove(0, offsetBB)

		// Check
		assert.Equal(t, 2+len("bb")+1, removed, "size field, key bytes and terminator removed")
		assert.Equal(t, lengthBefore-removed, buckets.BucketLen(0), "logical length shrunk")
		assert.Equal(t, []byte("a"), buckets.KeyAt(0, 0), "leading record untouched")
		assert.Equal(t, []byte("ccc"), buckets.KeyAt(0, offsetCCC-removed), "trailing record shifted left by removed byte count")
	})

	t.Run("removes the only record leaving an empty bucket", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(1, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		offset := buckets.Append(0, []byte("solo"))

		// Execute
		buckets.Remove(0, offset)

		// Check
		assert.Equal(t, 0, buckets.BucketLen(0), "bucket empty after removal")
	})
}

func TestPackedBuckets_Clear(t *testing.T) {
	t.Run("releases buffers but keeps the bucket count", func(t *testing.T) {
		// Prepare
		buckets := NewPackedBuckets(8, model.StoreConf{KeySizeWidth: 2, StoreTerminator: true})
		buckets.Append(3, []byte("somekey"))

		// Execute
		buckets.Clear()

		// Check
		assert.Equal(t, 8, buckets.BucketCount(), "bucket count kept")
		assert.Equal(t, 0, buckets.BucketLen(3), "bucket contents released")
	})
}
