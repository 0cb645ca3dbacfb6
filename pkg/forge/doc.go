// Package forge provides shared HTTP plumbing for code-forge API clients.
//
// The [Client] wraps net/http with a configurable timeout, default request
// headers, and a mapping from HTTP status codes to the structured error
// taxonomy in pkg/errors. Forge-specific clients (currently only GitHub in
// the github subpackage) embed it.
//
// Every request is made exactly once: the tool is a fail-fast batch pipeline
// and deliberately performs no retries, backoff, or response caching.
package forge
