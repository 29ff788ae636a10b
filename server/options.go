package server

import "time"

type Options struct {
	Timeout TimeoutOptions
}

// TimeoutOptions bound how long a connection may sit in the stream calls.
// Zero means no limit, which leaves a silent peer suspended forever.
type TimeoutOptions struct {
	// ReadTimeout caps decoding one full message, waiting included.
	ReadTimeout time.Duration
	// WriteTimeout caps writing one reply.
	WriteTimeout time.Duration
}
