package pusher

import "time"

type Config struct {
	Remote        string
	Branch        string
	RetryAttempts int
	RetryDelay    time.Duration
}
