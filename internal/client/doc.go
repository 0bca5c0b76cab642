// Package client implements the request layer in front of the engine:
// normalization of the two accepted call shapes into canonical prompts,
// sampling broadcast resolution, deprecation diagnostics and the session
// glue that submits one batch and returns results in submission order.
//
// Everything in this package is stateless and safe for concurrent use; the
// engine handle is the only shared resource and is reached through the
// Generator seam.
package client
