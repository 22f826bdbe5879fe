// Package ctxutil carries request scoped values (trace id, gin context)
// through context.Context.
package ctxutil
