// Package murmur3 implements the MurmurHash3 x64 128-bit variant used to
// derive identifiers from canonical component strings.
//
// The implementation is bit-exact against the reference algorithm: existing
// stored identifiers depend on it, so any deviation is a compatibility break,
// not a tuning choice. Seed is fixed at zero.
package murmur3
