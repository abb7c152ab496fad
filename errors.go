package arrayhash

// CapacityExceeded - Custom error to inform that a key length, element count or bucket count would
// exceed a configured field width ceiling. The operation that reports it has left the set unchanged.
type CapacityExceeded struct {
	msg string
}

// Error - Used to notify that a capacity ceiling would be exceeded
func (E CapacityExceeded) Error() string {
	if E.msg == "" {
		return "capacity exceeded"
	}
	return E.msg
}

// InvalidArgument - Custom error to inform that an argument was rejected before any mutation took
// place, for instance a non-positive load factor ceiling.
type InvalidArgument struct {
	msg string
}

// Error - Used to notify that an argument was rejected
func (E InvalidArgument) Error() string {
	if E.msg == "" {
		return "invalid argument"
	}
	return E.msg
}
