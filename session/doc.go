// Package session tracks live notebook sessions. A session binds a stable
// identifier to one notebook document and its execution context; the store
// hands out the live session rather than a clone because the document owns a
// running interpreter that cannot be meaningfully copied.
//
// The Store interface lives here (not in core) because a session embeds a
// *notebook.Document; centralizing it in core would create an import cycle.
// Add additional backends (Redis, Postgres, etc.) in sub-packages without
// changing any calling code.
package session
