// Package vision wraps a multimodal chat completion endpoint that produces a
// title and description for an image URL.
package vision
