// Package api implements the low-level HTTP client for the Supp API.
//
// The package centers on one component: the request dispatcher (Client.Do).
// Every resource method builds an immutable Request descriptor and hands it
// to the dispatcher, which serializes it, attaches authentication, bounds it
// with a per-attempt timeout, retries transient failures with capped
// exponential backoff, and maps terminal failures onto the typed error
// taxonomy in internal/apierrors.
//
// Wire types in this package mirror the API's lower_snake_case field naming.
// The public package translates them to idiomatic Go types at its boundary.
package api
