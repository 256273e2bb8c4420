// Package subtitles converts timed caption formats (SRT, WebVTT) into plain
// transcript text.
//
// Auto-generated captions repeat the trailing line of each cue at the start
// of the next one, so parsing collapses consecutive duplicate lines before
// joining the transcript.
package subtitles
