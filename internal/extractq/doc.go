// Package extractq serializes expensive video extraction work through a
// single-worker FIFO queue.
//
// Submitting returns a Job handle immediately; the caller blocks on
// Job.Wait rather than polling. Exactly one job runs at a time and jobs
// complete in submission order. Submissions are deduplicated by key while a
// job for that key is still pending or running, so concurrent requests for
// the same video share one download instead of racing.
package extractq
