// Package engine orchestrates notebook sessions. It is the central
// coordination point between the session store, the per-session notebook
// documents and the persistence layer: every operation resolves a session id
// to its live document, applies the requested mutation or query, and returns
// the document's structured result record.
//
// The engine adds the cross-cutting concerns the lower layers deliberately
// avoid: lazy session creation, an optional per-run execution timeout, and
// structured logging of execution and persistence events.
package engine
