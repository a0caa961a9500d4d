// Package bugzilla fetches bug records from a Bugzilla REST endpoint.
//
// The client queries /rest/bug with a product, component, and resolution
// filter and returns flat [tracker.Record] values ready for graph
// construction. Responses are cached through a [cache.Cache] backend and
// transient failures are retried with exponential backoff.
//
// Bugzilla serializes some fields loosely: cf_rank may arrive as a JSON
// number, a string, or null, and alias may be a string or a list of
// strings depending on server version. Both are normalized during
// decoding.
package bugzilla
