package git

import (
	"errors"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// lookBinary resolves bin, or "git" from PATH when bin is empty.
func lookBinary(bin string) (string, error) {
	if bin == "" {
		bin = "git"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", ErrGitNotFound
	}
	return path, nil
}
