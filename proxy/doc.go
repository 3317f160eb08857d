// Package proxy synthesizes interception proxies for annotated types at
// runtime.
//
// A caller asks the per-type facade for "an instance of T" and
// transparently receives either a plain T (when T carries no proxy
// marker) or an augmented instance whose overridable members run the
// attached hook logic around the original body. Overridable members are
// T's exported func-typed fields; ordinary methods stay non-overridable
// and host the optional change/observe handlers.
//
// Design goals:
//   - Transparent: call sites are unchanged; New decides plain vs proxied.
//   - Once per type: classification and synthesis run at most once, under
//     concurrent first use, and the result is shared process-wide.
//   - Two shapes: override-in-place (delegate to the captured base
//     implementation) and wrap-and-delegate (forward, late-bound, to an
//     internally owned instance; Equals/HashCode follow the inner).
//   - Deterministic weaving: before hooks, accessor notification,
//     parameter hooks, the delegated call, after hooks, in that order,
//     always.
//   - Honest failures: configuration errors surface at synthesis with
//     typed errors; hook and body failures propagate unmodified.
//
// Types opt in declaratively through the annotation package; see its
// documentation for the marker surface. A minimal session:
//
//	annotation.Bind[Ledger](
//	    annotation.Proxy(),
//	    annotation.Constructor(NewLedger),
//	    annotation.Member("Post", audit),
//	)
//
//	ledger, err := proxy.For[Ledger]().New()
package proxy
