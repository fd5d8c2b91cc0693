package pusher

import "errors"

var (
	ErrPushFailed        = errors.New("failed to push to remote")
	ErrRemoteUnreachable = errors.New("remote unreachable")
)
