// Package keys defines the key catalog: stored key pair records, list queries, the repository
// contract and the application services built on the textbook RSA engine.
package keys
