package model

// Locator - Identifies exactly one live key record by the bucket it lives in and the byte offset
// within that bucket's buffer where its record starts.
type Locator struct {
	Bucket int
	Offset int
}

// StoreConf - Is a struct to be passed in the call to NewPackedBuckets and contains configuration
// that affects the record framing inside bucket buffers.
//   - KeySizeWidth is the number of bytes (1, 2 or 4) used for the size field prefixing each key
//   - StoreTerminator indicates whether a single zero byte is appended after each key
type StoreConf struct {
	KeySizeWidth    int
	StoreTerminator bool
}
