// Package task manages background job queuing, processing, and lifecycle.
// Deck runs submitted over HTTP execute here on a bounded worker pool so the
// request handler can return immediately with a job id to poll.
package task
