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

// Package fakegit provides an in-memory repository client for tests.
package fakegit

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"k8s.io/release-cherrypicker/pkg/git"
)

// FakeRepo is an in-memory git.RepoClient. Calls are recorded as their git
// command line so tests can assert on ordering.
type FakeRepo struct {
	Dir  string
	Head git.Commit
	// HeadErr is returned by LatestNonMergeCommit when set.
	HeadErr error
	// RemoteBranches lists the branches that exist upstream.
	RemoteBranches sets.String
	// LsRemoteErr is returned by RemoteBranchExists when set.
	LsRemoteErr error
	// Conflicts lists start branches onto which the head commit does not apply.
	Conflicts sets.String
	// FetchErrors lists branches whose fetch fails.
	FetchErrors sets.String
	// PushErrors lists working branches whose push fails.
	PushErrors sets.String

	Calls        []string
	Pushed       []string
	ConfigValues map[string]string

	current string
	startOf map[string]string
}

var _ git.RepoClient = &FakeRepo{}

// NewFakeRepo returns a repo whose HEAD is head and whose remote has the given branches.
func NewFakeRepo(head git.Commit, remoteBranches ...string) *FakeRepo {
	return &FakeRepo{
		Dir:            "/workspace",
		Head:           head,
		RemoteBranches: sets.NewString(remoteBranches...),
		Conflicts:      sets.NewString(),
		FetchErrors:    sets.NewString(),
		PushErrors:     sets.NewString(),
		ConfigValues:   map[string]string{},
		startOf:        map[string]string{},
	}
}

func (f *FakeRepo) record(format string, args ...interface{}) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *FakeRepo) Directory() string {
	return f.Dir
}

func (f *FakeRepo) LatestNonMergeCommit() (git.Commit, error) {
	f.record("log --no-merges")
	if f.HeadErr != nil {
		return git.Commit{}, f.HeadErr
	}
	if f.Head.SHA == "" {
		return git.Commit{}, git.ErrNoCommit
	}
	return f.Head, nil
}

func (f *FakeRepo) RemoteBranchExists(branch string) (bool, error) {
	f.record("ls-remote %s", branch)
	if f.LsRemoteErr != nil {
		return false, f.LsRemoteErr
	}
	return f.RemoteBranches.Has(branch), nil
}

func (f *FakeRepo) FetchBranch(branch string) error {
	f.record("fetch %s", branch)
	if f.FetchErrors.Has(branch) || !f.RemoteBranches.Has(branch) {
		return fmt.Errorf("couldn't find remote ref refs/heads/%s", branch)
	}
	return nil
}

func (f *FakeRepo) CheckoutNewBranchFrom(branch, start string) error {
	f.record("checkout -B %s %s", branch, start)
	f.startOf[branch] = start
	f.current = branch
	return nil
}

func (f *FakeRepo) CherryPick(sha string) (bool, error) {
	f.record("cherry-pick %s", sha)
	if sha != f.Head.SHA {
		return false, fmt.Errorf("bad revision %q", sha)
	}
	if f.Conflicts.Has(f.startOf[f.current]) {
		f.record("cherry-pick --abort")
		return false, nil
	}
	return true, nil
}

func (f *FakeRepo) Checkout(commitlike string) error {
	f.record("checkout %s", commitlike)
	f.current = commitlike
	return nil
}

func (f *FakeRepo) ForceCheckout(commitlike string) error {
	f.record("checkout --force %s", commitlike)
	f.current = commitlike
	return nil
}

func (f *FakeRepo) ResetHard(commitlike string) error {
	f.record("reset --hard %s", commitlike)
	return nil
}

func (f *FakeRepo) Config(args ...string) error {
	if len(args) != 2 {
		return errors.New("fake config supports key and value only")
	}
	f.record("config %s %s", args[0], args[1])
	f.ConfigValues[args[0]] = args[1]
	return nil
}

func (f *FakeRepo) PushToCentral(branch string, force bool) error {
	if force {
		f.record("push --force %s", branch)
	} else {
		f.record("push %s", branch)
	}
	if f.PushErrors.Has(branch) {
		return fmt.Errorf("failed to push %s", branch)
	}
	f.Pushed = append(f.Pushed, branch)
	return nil
}
