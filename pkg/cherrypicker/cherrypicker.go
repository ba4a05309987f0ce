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

// Package cherrypicker replays the latest commit of the integration branch
// onto the release branches its pull request is labeled with. Each release
// branch gets either a new pull request or, when the replay fails, a Slack
// notification for the author.
package cherrypicker

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"k8s.io/release-cherrypicker/pkg/git"
	"k8s.io/release-cherrypicker/pkg/github"
	"k8s.io/release-cherrypicker/pkg/slack"
)

type githubClient interface {
	GetPullRequest(org, repo string, number int) (*github.PullRequest, error)
	CreatePullRequest(org, repo, title, body, head, base string, canModify bool) (int, error)
	RequestReview(org, repo string, number int, logins []string) error
	AddLabels(org, repo string, number int, labels ...string) error
}

type slackClient interface {
	SendMessage(msg slack.Message) error
}

// Cherrypicker holds the clients and settings of one run.
type Cherrypicker struct {
	Org  string
	Repo string

	Git    git.RepoClient
	GitHub githubClient
	Slack  slackClient
	Config *Config

	// GitName and GitEmail set the committer identity when non-empty.
	GitName  string
	GitEmail string

	Log *logrus.Entry
}

// Run cherry-picks the latest non-merge commit onto every release branch
// its pull request is labeled with. Outcomes are returned for the branches
// handled before any fatal error. Branches that do not exist upstream and
// replays that fail are not errors.
func (c *Cherrypicker) Run() ([]Outcome, error) {
	l := c.Log.WithFields(logrus.Fields{"org": c.Org, "repo": c.Repo})

	if c.GitName != "" {
		if err := c.Git.Config("user.name", c.GitName); err != nil {
			return nil, err
		}
		if err := c.Git.Config("user.email", c.GitEmail); err != nil {
			return nil, err
		}
	}

	commit, err := c.Git.LatestNonMergeCommit()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve the commit to cherry-pick: %w", err)
	}
	l = l.WithField("sha", commit.SHA)

	id, ok := ExtractRequestID(commit.Subject)
	if !ok {
		l.WithField("subject", commit.Subject).Info("Commit does not reference a pull request, nothing to cherry-pick.")
		return nil, nil
	}
	l = l.WithField("pr", id)

	pr, err := c.GitHub.GetPullRequest(c.Org, c.Repo, id)
	if err != nil {
		if github.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("commit references #%d, which is not a pull request in %s/%s: %w", id, c.Org, c.Repo, err)
		}
		return nil, fmt.Errorf("failed to get pull request #%d: %w", id, err)
	}
	if pr.Number == 0 {
		pr.Number = id
	}

	labels := LabelCSV(pr.Labels)
	targets := DeriveTargetBranches(labels, c.Config.BranchRegexp())
	if len(targets) == 0 {
		l.WithField("labels", labels).Info("Pull request has no release branch labels, nothing to cherry-pick.")
		return nil, nil
	}
	l.WithField("targets", targets).Infof("Cherry-picking #%d onto %d branch(es).", id, len(targets))

	var outcomes []Outcome
	for _, target := range targets {
		outcome, err := c.pick(l.WithField("target_branch", target), commit, pr, target)
		if err != nil {
			return outcomes, fmt.Errorf("cherry-pick onto %s: %w", target, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// pick handles a single target branch. Errors are fatal to the run.
func (c *Cherrypicker) pick(l *logrus.Entry, commit git.Commit, pr *github.PullRequest, target string) (Outcome, error) {
	start := time.Now()
	exists, err := c.Git.RemoteBranchExists(target)
	if err != nil {
		return Outcome{}, err
	}
	if !exists {
		l.Info("Target branch does not exist upstream, skipping.")
		return Outcome{Branch: target, Kind: Skipped, Reason: reasonMissingRemote}, nil
	}

	working := WorkingBranch(pr.Number, target)
	if reason := c.replay(l, commit, target, working); reason != "" {
		if err := c.restoreWorkspace(); err != nil {
			return Outcome{}, fmt.Errorf("failed to restore the workspace: %w", err)
		}
		if err := c.notify(commit, pr, target, reason); err != nil {
			return Outcome{}, fmt.Errorf("failed to notify about the failed cherry-pick: %w", err)
		}
		l.WithField("reason", reason).WithField("duration", time.Since(start)).Info("Cherry-pick failed, notified the author.")
		return Outcome{Branch: target, Kind: Notified, Reason: reason}, nil
	}

	if err := c.Git.Checkout(c.Config.BaseBranch); err != nil {
		return Outcome{}, err
	}

	number, err := c.GitHub.CreatePullRequest(c.Org, c.Repo, PullRequestTitle(pr, target), PullRequestBody(pr, target), working, target, true)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create pull request: %w", err)
	}
	l = l.WithField("cherry_pick_pr", number)

	if login := pr.User.Login; login == "" {
		l.Warn("Original pull request has no author, not requesting a review.")
	} else if err := c.GitHub.RequestReview(c.Org, c.Repo, number, []string{login}); err != nil {
		var missing github.MissingUsers
		if !errors.As(err, &missing) {
			return Outcome{}, fmt.Errorf("failed to request review: %w", err)
		}
		l.WithError(err).Warn("Cannot request a review from the original author.")
	}

	if len(c.Config.Labels) > 0 {
		if err := c.GitHub.AddLabels(c.Org, c.Repo, number, c.Config.Labels...); err != nil {
			return Outcome{}, fmt.Errorf("failed to add labels: %w", err)
		}
	}

	l.WithField("duration", time.Since(start)).Infof("Created cherry-pick pull request #%d.", number)
	return Outcome{Branch: target, Kind: Created, PullRequest: number}, nil
}

// replay prepares working on top of target with the commit applied and
// pushes it. It returns why it failed, or an empty string on success.
func (c *Cherrypicker) replay(l *logrus.Entry, commit git.Commit, target, working string) string {
	if err := c.Git.FetchBranch(target); err != nil {
		l.WithError(err).Warn("Failed to fetch target branch.")
		return reasonFetch
	}
	if err := c.Git.CheckoutNewBranchFrom(working, target); err != nil {
		l.WithError(err).Warn("Failed to create working branch.")
		return reasonBranch
	}
	clean, err := c.Git.CherryPick(commit.SHA)
	if err != nil {
		l.WithError(err).Warn("Cherry-pick did not complete.")
		return reasonCherryPick
	}
	if !clean {
		l.Info("Commit does not apply cleanly.")
		return reasonConflict
	}
	if err := c.Git.PushToCentral(working, true); err != nil {
		l.WithError(err).Warn("Failed to push working branch.")
		return reasonPush
	}
	return ""
}

// restoreWorkspace discards whatever a failed replay left behind and goes
// back to the integration branch.
func (c *Cherrypicker) restoreWorkspace() error {
	if err := c.Git.ResetHard("HEAD"); err != nil {
		return err
	}
	return c.Git.ForceCheckout(c.Config.BaseBranch)
}

func (c *Cherrypicker) notify(commit git.Commit, pr *github.PullRequest, target, reason string) error {
	handle := AuthorHandle(commit.AuthorEmail)
	if handle == "" {
		handle = pr.User.Login
	}
	msg := c.Config.failureMessage(handle, pullRequestURL(c.Org, c.Repo, pr), pr, target, reason)
	return c.Slack.SendMessage(msg)
}
