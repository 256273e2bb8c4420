// Package transcode strips the audio track out of audio/video containers
// using ffmpeg so a single transcription path can serve both audio-only and
// video inputs.
//
// Temporary files are scoped to each call: the input copy and the extracted
// output are both removed on every exit path, including transcoder and read
// failures.
package transcode
