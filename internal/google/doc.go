// Package google resolves the Google API credential used by the server.
//
// Resolution runs once at startup and tries, in order: a service account
// key file, a cached OAuth token, a refresh of that token, and finally an
// interactive browser flow. A broken service account key degrades to the
// OAuth chain with a warning rather than failing the process, so a stale
// key file does not take the server down. Exhausting the whole chain is
// fatal: the server never starts without a credential.
package google
