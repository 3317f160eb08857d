// Package proxiercore is the root of a runtime aspect-weaving engine for Go.
//
// Callers ask a per-type facade for "an instance of T" and transparently
// receive either a plain T or a behaviorally-augmented one whose
// overridable members run attached hook logic around the original body,
// optionally firing change/observe notifications.
//
// The repository is organized as:
//
//   - proxy: the engine — classifier, registry/namer, synthesizer, hook
//     injection pipeline and the per-type generator facade
//   - annotation: the declarative marker side-table types opt in through
//   - examples/audit: a runnable end-to-end example
//
// Start with the proxy package documentation for the generation model and
// the annotation package for the authoring contract.
package proxiercore
