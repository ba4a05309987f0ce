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

// Package localgit creates real git repositories on disk that stand in for
// GitHub remotes in tests.
package localgit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LocalGit stores the repos in a temp dir. Create with New and delete with
// Clean.
type LocalGit struct {
	// Dir is the path to the base temp directory. Repos are located in org/repo.
	Dir string
	// Git is the location of the git binary.
	Git string
}

// New creates a LocalGit in a fresh temp directory.
func New() (*LocalGit, error) {
	g, err := exec.LookPath("git")
	if err != nil {
		return nil, err
	}
	t, err := os.MkdirTemp("", "localgit")
	if err != nil {
		return nil, err
	}
	return &LocalGit{Dir: t, Git: g}, nil
}

// Clean deletes the local git dir.
func (lg *LocalGit) Clean() error {
	return os.RemoveAll(lg.Dir)
}

func (lg *LocalGit) run(dir string, args ...string) (string, error) {
	cmd := exec.Command(lg.Git, args...)
	cmd.Dir = dir
	// Keep the user's global and system config out of the fixtures.
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1", "HOME="+lg.Dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, string(out))
	}
	return string(out), nil
}

func (lg *LocalGit) repoDir(org, repo string) string {
	return filepath.Join(lg.Dir, org, repo)
}

func (lg *LocalGit) configure(dir string) error {
	for _, kv := range [][]string{
		{"user.name", "test"},
		{"user.email", "test@example.com"},
		{"commit.gpgsign", "false"},
	} {
		if _, err := lg.run(dir, "config", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// MakeFakeRepo creates org/repo with an initial commit on main.
func (lg *LocalGit) MakeFakeRepo(org, repo string) error {
	rdir := lg.repoDir(org, repo)
	if err := os.MkdirAll(rdir, os.ModePerm); err != nil {
		return err
	}
	if _, err := lg.run(rdir, "init"); err != nil {
		return err
	}
	if _, err := lg.run(rdir, "symbolic-ref", "HEAD", "refs/heads/main"); err != nil {
		return err
	}
	if err := lg.configure(rdir); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(rdir, "initial"), []byte("initial"), os.ModePerm); err != nil {
		return err
	}
	if _, err := lg.run(rdir, "add", "initial"); err != nil {
		return err
	}
	_, err := lg.run(rdir, "commit", "-m", "initial commit")
	return err
}

// AddCommit writes files into org/repo and commits them on the current branch.
func (lg *LocalGit) AddCommit(org, repo string, files map[string][]byte) error {
	return lg.AddCommitWithMessage(org, repo, "wow", files)
}

// AddCommitWithMessage is AddCommit with a custom commit subject.
func (lg *LocalGit) AddCommitWithMessage(org, repo, message string, files map[string][]byte) error {
	rdir := lg.repoDir(org, repo)
	for f, b := range files {
		path := filepath.Join(rdir, f)
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return err
		}
		if err := os.WriteFile(path, b, os.ModePerm); err != nil {
			return err
		}
		if _, err := lg.run(rdir, "add", f); err != nil {
			return err
		}
	}
	_, err := lg.run(rdir, "commit", "-m", message)
	return err
}

// CheckoutNewBranch creates a branch from the current HEAD and switches to it.
func (lg *LocalGit) CheckoutNewBranch(org, repo, branch string) error {
	_, err := lg.run(lg.repoDir(org, repo), "checkout", "-b", branch)
	return err
}

// Checkout switches org/repo to commitlike.
func (lg *LocalGit) Checkout(org, repo, commitlike string) error {
	_, err := lg.run(lg.repoDir(org, repo), "checkout", commitlike)
	return err
}

// RevParse returns the SHA of commitlike in org/repo.
func (lg *LocalGit) RevParse(org, repo, commitlike string) (string, error) {
	out, err := lg.run(lg.repoDir(org, repo), "rev-parse", commitlike)
	return strings.TrimSpace(out), err
}

// Clone checks org/repo out into a new workspace, the way CI does before a
// run, and returns its path. The clone's origin is org/repo.
func (lg *LocalGit) Clone(org, repo string) (string, error) {
	workspace, err := os.MkdirTemp(lg.Dir, "workspace")
	if err != nil {
		return "", err
	}
	if _, err := lg.run(lg.Dir, "clone", lg.repoDir(org, repo), workspace); err != nil {
		return "", err
	}
	if _, err := lg.run(workspace, "config", "commit.gpgsign", "false"); err != nil {
		return "", err
	}
	return workspace, nil
}

// Run runs git with args in dir and returns its combined output.
func (lg *LocalGit) Run(dir string, args ...string) (string, error) {
	return lg.run(dir, args...)
}
