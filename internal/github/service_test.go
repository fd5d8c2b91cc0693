package github

import (
	"errors"
	"testing"
)

func TestParseRemote(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		name  string
		err   error
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets", nil},
		{"https://github.com/acme/widgets", "acme", "widgets", nil},
		{"https://github.com/acme/widgets/", "acme", "widgets", nil},
		{"git@github.com:acme/widgets.git", "acme", "widgets", nil},
		{"git@github.com:acme/widgets", "acme", "widgets", nil},
		{"https://gitlab.com/acme/widgets.git", "", "", ErrNotGitHubRemote},
		{"git@bitbucket.org:acme/widgets.git", "", "", ErrNotGitHubRemote},
		{"https://github.com/acme", "", "", ErrInvalidRemote},
		{"https://github.com/", "", "", ErrInvalidRemote},
	}

	for _, tc := range cases {
		owner, name, err := ParseRemote(tc.url)

		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseRemote(%q) error = %v, expected %v", tc.url, err, tc.err)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseRemote(%q) unexpected error: %v", tc.url, err)
			continue
		}
		if owner != tc.owner || name != tc.name {
			t.Errorf("ParseRemote(%q) = (%q, %q), expected (%q, %q)", tc.url, owner, name, tc.owner, tc.name)
		}
	}
}
