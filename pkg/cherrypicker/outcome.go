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

package cherrypicker

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// OutcomeKind is what happened for one target branch.
type OutcomeKind string

const (
	// Created means a cherry-pick pull request was opened.
	Created OutcomeKind = "created"
	// Notified means the replay failed and the author was told on Slack.
	Notified OutcomeKind = "notified"
	// Skipped means the branch does not exist upstream yet.
	Skipped OutcomeKind = "skipped"
)

// Outcome records the result of one target branch.
type Outcome struct {
	Branch string
	Kind   OutcomeKind
	// PullRequest is the number of the created pull request. It is zero for
	// other kinds and in dry-run mode.
	PullRequest int
	// Reason explains Notified and Skipped outcomes.
	Reason string
}

// Summarize counts outcomes per kind.
func Summarize(outcomes []Outcome) map[OutcomeKind]int {
	counts := map[OutcomeKind]int{Created: 0, Notified: 0, Skipped: 0}
	for _, o := range outcomes {
		counts[o.Kind]++
	}
	return counts
}

// LogSummary logs one line describing the run.
func LogSummary(logger *logrus.Entry, outcomes []Outcome) {
	counts := Summarize(outcomes)
	var branches []string
	for _, o := range outcomes {
		branches = append(branches, o.Branch+"="+string(o.Kind))
	}
	logger.WithFields(logrus.Fields{
		"created":  counts[Created],
		"notified": counts[Notified],
		"skipped":  counts[Skipped],
		"branches": strings.Join(branches, ","),
	}).Info("Cherry-pick run finished.")
}
