// Package confidence estimates how discriminative a fingerprint is likely to
// be, independently of the hash.
//
// The heuristic reads the platform component only: widespread mobile OS
// families score low because their hardware and software are highly uniform,
// named desktop systems score mid-range, and unrecognized platforms score
// high on the rationale that rarity itself discriminates. Purely
// computational, no failure modes beyond the default score.
package confidence
