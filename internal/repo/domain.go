package repo

// Author identifies the commit author and committer for a single commit.
// A zero Author leaves the repository's configured identity untouched.
type Author struct {
	Name  string
	Email string
}

func (a Author) IsZero() bool {
	return a.Name == "" && a.Email == ""
}

// State is a point-in-time snapshot of the working tree. It is recomputed
// on every call, never cached across an orchestration cycle.
type State struct {
	Branch       string
	IsDirty      bool
	ChangedFiles []string
}
