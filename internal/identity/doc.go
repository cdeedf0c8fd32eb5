// Package identity orchestrates the full measurement pipeline and assembles
// the result callers consume.
//
// The Engine runs every registered source through two batch passes (build
// loaders, resolve deferred outcomes) under one yielding discipline, zips the
// outcomes into a component set, and scores confidence eagerly. The Result's
// identifier is computed lazily, at most once, by canonicalizing the set and
// hashing it with Murmur3 x64-128.
//
// Nothing here persists: state lives for the duration of one run unless the
// caller deliberately reuses an Environment.
package identity
