/*
Copyright 2026 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Commit identifies a commit and the metadata needed to cherry-pick it.
type Commit struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	Subject     string
}

// ErrNoCommit is returned when the history has no non-merge commit.
var ErrNoCommit = errors.New("no non-merge commit found")

// Interactor knows how to operate on a git repository checked out from GitHub.
type Interactor interface {
	// Directory exposes the directory in which the repository has been cloned
	Directory() string
	// LatestNonMergeCommit returns the newest commit reachable from HEAD that has a single parent
	LatestNonMergeCommit() (Commit, error)
	// RemoteBranchExists determines if a branch exists on the central remote
	RemoteBranchExists(branch string) (bool, error)
	// FetchBranch updates the local branch of the same name from the central remote
	FetchBranch(branch string) error
	// CheckoutNewBranchFrom creates a new local branch from start, resetting it if it exists
	CheckoutNewBranchFrom(branch, start string) error
	// CherryPick applies a commit on top of HEAD, returning false after
	// aborting if the commit does not apply cleanly
	CherryPick(sha string) (bool, error)
	// Checkout runs `git checkout`
	Checkout(commitlike string) error
	// ForceCheckout runs `git checkout --force`, discarding local modifications
	ForceCheckout(commitlike string) error
	// ResetHard runs `git reset --hard`
	ResetHard(commitlike string) error
	// Config runs `git config`
	Config(args ...string) error
}

// interactor operates on a workspace the CI platform already checked out
type interactor struct {
	executor executor
	remote   RemoteResolver
	dir      string
	logger   *logrus.Entry
}

// Directory exposes the directory in which this repository has been cloned
func (i *interactor) Directory() string {
	return i.dir
}

// logFormat separates fields with NUL so that subjects can hold anything
const logFormat = "--format=%H%x00%an%x00%ae%x00%s"

// LatestNonMergeCommit returns the newest non-merge commit reachable from HEAD
func (i *interactor) LatestNonMergeCommit() (Commit, error) {
	i.logger.Debug("Finding latest non-merge commit")
	out, err := i.executor.Run("log", "--no-merges", "-n", "1", logFormat, "HEAD")
	if err != nil {
		return Commit{}, fmt.Errorf("error listing commits: %w %v", err, string(out))
	}
	return parseCommit(string(out))
}

func parseCommit(raw string) (Commit, error) {
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return Commit{}, ErrNoCommit
	}
	fields := strings.SplitN(raw, "\x00", 4)
	if len(fields) != 4 {
		return Commit{}, fmt.Errorf("could not parse commit %q", raw)
	}
	return Commit{
		SHA:         fields[0],
		AuthorName:  fields[1],
		AuthorEmail: fields[2],
		Subject:     fields[3],
	}, nil
}

// RemoteBranchExists determines if a branch exists on the central remote
func (i *interactor) RemoteBranchExists(branch string) (bool, error) {
	i.logger.Debugf("Checking if branch %s exists on the remote", branch)
	remote, err := i.remote()
	if err != nil {
		return false, fmt.Errorf("could not resolve remote for listing: %w", err)
	}
	out, err := i.executor.Run("ls-remote", "--heads", remote, "refs/heads/"+branch)
	if err != nil {
		return false, fmt.Errorf("error listing remote heads: %w %v", err, string(out))
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// FetchBranch updates the local branch of the same name from the central remote
func (i *interactor) FetchBranch(branch string) error {
	i.logger.Infof("Fetching %s from the remote", branch)
	remote, err := i.remote()
	if err != nil {
		return fmt.Errorf("could not resolve remote for fetching: %w", err)
	}
	refspec := fmt.Sprintf("+refs/heads/%s:refs/heads/%s", branch, branch)
	if out, err := i.executor.Run("fetch", remote, refspec); err != nil {
		return fmt.Errorf("error fetching %s: %w %v", branch, err, string(out))
	}
	return nil
}

// CheckoutNewBranchFrom creates a new local branch from start, resetting it if it exists
func (i *interactor) CheckoutNewBranchFrom(branch, start string) error {
	i.logger.Infof("Checking out new branch %s from %s", branch, start)
	if out, err := i.executor.Run("checkout", "-B", branch, start); err != nil {
		return fmt.Errorf("error checking out new branch %s: %w %v", branch, err, string(out))
	}
	return nil
}

// CherryPick applies a commit on top of HEAD. When the commit does not apply
// cleanly the operation is aborted and false is returned with no error.
func (i *interactor) CherryPick(sha string) (bool, error) {
	i.logger.Infof("Cherry-picking %s", sha)
	out, err := i.executor.Run("cherry-pick", sha)
	if err == nil {
		return true, nil
	}
	i.logger.WithError(err).Infof("Cherry-pick failed with output:\n%s", string(out))
	if out, err := i.executor.Run("cherry-pick", "--abort"); err != nil {
		return false, fmt.Errorf("error aborting cherry-pick of %s: %w %v", sha, err, string(out))
	}
	return false, nil
}

// Checkout runs git checkout
func (i *interactor) Checkout(commitlike string) error {
	i.logger.Infof("Checking out %q", commitlike)
	if out, err := i.executor.Run("checkout", commitlike); err != nil {
		return fmt.Errorf("error checking out %q: %w %v", commitlike, err, string(out))
	}
	return nil
}

// ForceCheckout runs git checkout --force
func (i *interactor) ForceCheckout(commitlike string) error {
	i.logger.Infof("Force checking out %q", commitlike)
	if out, err := i.executor.Run("checkout", "--force", commitlike); err != nil {
		return fmt.Errorf("error force checking out %q: %w %v", commitlike, err, string(out))
	}
	return nil
}

// ResetHard runs git reset --hard
func (i *interactor) ResetHard(commitlike string) error {
	i.logger.Infof("Resetting to %q", commitlike)
	if out, err := i.executor.Run("reset", "--hard", commitlike); err != nil {
		return fmt.Errorf("error resetting to %q: %w %v", commitlike, err, string(out))
	}
	return nil
}

// Config runs git config
func (i *interactor) Config(args ...string) error {
	i.logger.WithField("args", args).Debug("Configuring.")
	if out, err := i.executor.Run(append([]string{"config"}, args...)...); err != nil {
		return fmt.Errorf("error configuring %v: %w %v", args, err, string(out))
	}
	return nil
}
