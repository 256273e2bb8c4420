// Package docconv wraps a Tika-style document-to-text conversion endpoint:
// raw document bytes go up, extracted plain text comes back.
package docconv
