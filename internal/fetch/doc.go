// Package fetch retrieves attachment bytes from HTTP(S) URLs or local paths,
// enforcing a configurable download size cap.
package fetch
