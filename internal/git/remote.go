package git

import (
	"fmt"
	"strings"
)

// ParseRemoteURL extracts (owner, project) from a remote URL in either
// SSH form (git@host:owner/project.git) or HTTPS form
// (https://host/owner/project.git). The SSH path must be exactly
// owner/project; HTTPS URLs with deeper paths keep the last two
// segments. Anything without two non-empty segments is a parse error.
func ParseRemoteURL(url string) (owner, project string, err error) {
	switch {
	case strings.HasPrefix(url, "git@"):
		_, path, ok := strings.Cut(url, ":")
		if !ok {
			return "", "", fmt.Errorf("%w: SSH remote URL %q", ErrParse, url)
		}
		segments := strings.Split(strings.TrimSuffix(path, ".git"), "/")
		if len(segments) != 2 {
			return "", "", fmt.Errorf("%w: remote URL %q: want owner/project", ErrParse, url)
		}
		return ownerProject(url, segments[0], segments[1])

	case strings.Contains(url, "://"):
		_, rest, _ := strings.Cut(url, "://")
		host, path, ok := strings.Cut(rest, "/")
		if !ok || host == "" {
			return "", "", fmt.Errorf("%w: HTTPS remote URL %q", ErrParse, url)
		}
		segments := strings.Split(path, "/")
		if len(segments) < 2 {
			return "", "", fmt.Errorf("%w: remote URL %q: want owner/project", ErrParse, url)
		}
		owner := segments[len(segments)-2]
		project := strings.TrimSuffix(segments[len(segments)-1], ".git")
		return ownerProject(url, owner, project)

	default:
		return "", "", fmt.Errorf("%w: remote URL %q", ErrParse, url)
	}
}

func ownerProject(url, owner, project string) (string, string, error) {
	if owner == "" || project == "" {
		return "", "", fmt.Errorf("%w: remote URL %q: want owner/project", ErrParse, url)
	}
	return owner, project, nil
}
