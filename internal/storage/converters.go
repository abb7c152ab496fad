package storage

import "encoding/binary"

// Size fields are stored little endian in a fixed number of bytes per table instance.
// Supported widths are 1, 2 and 4 bytes, bounding the key length to 255, 65535 and
// 4294967295 bytes respectively.

// putKeySize - Writes size into the first width bytes of buf
func putKeySize(buf []byte, width, size int) {
	switch width {
	case 1:
		buf[0] = byte(size)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(size))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(size))
	default:
		panic("unsupported key size field width")
	}
}

// getKeySize - Reads a size from the first width bytes of buf
func getKeySize(buf []byte, width int) int {
	switch width {
	case 1:
		return int(buf[0])
	case 2:
		return int(binary.LittleEndian.Uint16(buf))
	case 4:
		return int(binary.LittleEndian.Uint32(buf))
	default:
		panic("unsupported key size field width")
	}
}
