package github

// TokenCheck is the outcome of testing a candidate token against the remote
// repository.
type TokenCheck struct {
	Valid   bool   // Token authenticates at all
	CanPush bool   // Token grants push on the repository
	Reason  string // Human-readable explanation when not usable
}
