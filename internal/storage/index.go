package storage

import "github.com/Hades210/arrayhash/internal/model"

// IndexTable - Dense array of locators, one per live key record. The array length always equals the
// live key count and the array order defines iteration order, which makes sequential iteration O(1)
// per step without scanning empty buckets.
type IndexTable struct {
	locators []model.Locator
}

// NewIndexTable - Returns a pointer to a new IndexTable instance with room for capacity locators
func NewIndexTable(capacity int) *IndexTable {
	return &IndexTable{locators: make([]model.Locator, 0, capacity)}
}

// Len - Returns the number of locators, i.e. the number of live key records
func (I *IndexTable) Len() int {
	return len(I.locators)
}

// At - Returns the locator at the given position
func (I *IndexTable) At(pos int) model.Locator {
	return I.locators[pos]
}

// Append - Appends a locator for a newly inserted record
func (I *IndexTable) Append(locator model.Locator) {
	I.locators = append(I.locators, locator)
}

// PosOf - Returns the position of the given locator, or found false if no live record is addressed
// by it. Cost is linear in the number of live records.
func (I *IndexTable) PosOf(locator model.Locator) (pos int, found bool) {
	for i := range I.locators {
		if I.locators[i] == locator {
			pos = i
			found = true
			return
		}
	}

	return
}

// RemoveAt - Removes the locator at the given position by overwriting it with the last live locator
// and truncating the array, bounding removal cost to O(1). As a consequence iteration order equals
// insertion order only until the first removal.
func (I *IndexTable) RemoveAt(pos int) {
	last := len(I.locators) - 1
	I.locators[pos] = I.locators[last]
	I.locators = I.locators[:last]
}

// ShiftOffsets - Repairs locators after a record of removed bytes was spliced out of the given
// bucket at offset: every locator in that bucket whose offset lay after the removed region is
// shifted left by removed bytes.
func (I *IndexTable) ShiftOffsets(bucketNo, offset, removed int) {
	for i := range I.locators {
		if I.locators[i].Bucket == bucketNo && I.locators[i].Offset > offset {
			I.locators[i].Offset -= removed
		}
	}
}

// Clear - Releases the locator storage
func (I *IndexTable) Clear() {
	I.locators = nil
}
