// Package probe defines the contract between the identification pipeline and
// the measurement sources it runs.
//
// A Source is a named detector that inspects the shared Environment and
// reports a Reading: either an immediate value, an immediate failure, or a
// deferred continuation for sources that need preparation before they can be
// sampled. The package also owns the Outcome record produced per source and
// the sentinel errors the pipeline uses to classify source failures.
//
// Sources must stay side-effect free toward each other; anything a source
// wants to share or cache across a run belongs in the Environment.
package probe
