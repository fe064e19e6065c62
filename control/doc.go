// Package control provides lightweight runtime observability for the
// polling core: a counter registry sampled by hosts or debug endpoints.
package control
