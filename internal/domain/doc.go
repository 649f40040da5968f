// Package domain contains the core types shared across the demo:
// search modes, hits, highlight payloads, and filter construction.
// These are distinct from the wire types of the search service client.
package domain
