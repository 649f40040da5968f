// Package marqo is a minimal HTTP client for the hosted search service.
// It covers the four operations the demo needs: index creation and
// deletion, bulk document upload, and search. Embedding generation,
// ranking, and storage all happen inside the service.
package marqo
