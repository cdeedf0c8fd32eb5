package murmur3

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	c1 = 0x87c37b91114253d5
	c2 = 0x4cf5ad432745937f

	n1 = 0x52dce729
	n2 = 0x38495ab5

	fmix1 = 0xff51afd7ed558ccd
	fmix2 = 0xc4ceb9fe1a85ec53
)

// Sum128 computes the x64 128-bit MurmurHash3 of data with seed 0 and
// returns the two 64-bit lanes.
func Sum128(data []byte) (uint64, uint64) {
	var h1, h2 uint64
	length := len(data)

	nblocks := length / 16
	for block := 0; block < nblocks; block++ {
		k1 := binary.LittleEndian.Uint64(data[block*16:])
		k2 := binary.LittleEndian.Uint64(data[block*16+8:])

		k1 *= c1
		k1 = bits.RotateLeft64(k1, 31)
		k1 *= c2
		h1 ^= k1
		h1 = bits.RotateLeft64(h1, 27)
		h1 += h2
		h1 = h1*5 + n1

		k2 *= c2
		k2 = bits.RotateLeft64(k2, 33)
		k2 *= c1
		h2 ^= k2
		h2 = bits.RotateLeft64(h2, 31)
		h2 += h1
		h2 = h2*5 + n2
	}

	tail := data[nblocks*16:]
	var k1, k2 uint64
	switch len(tail) {
	case 15:
		k2 ^= uint64(tail[14]) << 48
		fallthrough
	case 14:
		k2 ^= uint64(tail[13]) << 40
		fallthrough
	case 13:
		k2 ^= uint64(tail[12]) << 32
		fallthrough
	case 12:
		k2 ^= uint64(tail[11]) << 24
		fallthrough
	case 11:
		k2 ^= uint64(tail[10]) << 16
		fallthrough
	case 10:
		k2 ^= uint64(tail[9]) << 8
		fallthrough
	case 9:
		k2 ^= uint64(tail[8])
		k2 *= c2
		k2 = bits.RotateLeft64(k2, 33)
		k2 *= c1
		h2 ^= k2
		fallthrough
	case 8:
		k1 ^= uint64(tail[7]) << 56
		fallthrough
	case 7:
		k1 ^= uint64(tail[6]) << 48
		fallthrough
	case 6:
		k1 ^= uint64(tail[5]) << 40
		fallthrough
	case 5:
		k1 ^= uint64(tail[4]) << 32
		fallthrough
	case 4:
		k1 ^= uint64(tail[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint64(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint64(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint64(tail[0])
		k1 *= c1
		k1 = bits.RotateLeft64(k1, 31)
		k1 *= c2
		h1 ^= k1
	}

	h1 ^= uint64(length)
	h2 ^= uint64(length)
	h1 += h2
	h2 += h1
	h1 = fmix64(h1)
	h2 = fmix64(h2)
	h1 += h2
	h2 += h1
	return h1, h2
}

// SumString hashes the UTF-8 bytes of s and renders the 128-bit result as 32
// lowercase hex characters: h1 then h2, 16 digits each.
func SumString(s string) string {
	h1, h2 := Sum128([]byte(s))
	return fmt.Sprintf("%016x%016x", h1, h2)
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= fmix1
	k ^= k >> 33
	k *= fmix2
	k ^= k >> 33
	return k
}
