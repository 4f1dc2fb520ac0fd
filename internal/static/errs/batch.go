package errs

import "errors"

var (
	InvalidCount    = errors.New("count must be an integer")
	CountOutOfRange = errors.New("count out of range")
	InvalidMode     = errors.New("invalid mode")
)

var (
	PoolSize           = errors.New("worker pool size must be at least 1")
	PoolNotInitialized = errors.New("worker pool not initialized")
)
