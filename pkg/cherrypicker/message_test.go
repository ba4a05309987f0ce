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
	"testing"

	"github.com/google/go-cmp/cmp"

	"k8s.io/release-cherrypicker/pkg/github"
)

func TestPullRequestText(t *testing.T) {
	pr := &github.PullRequest{Number: 42, Title: "Fix bug", User: github.User{Login: "jdoe"}}

	if diff := cmp.Diff("Cherry pick `Fix bug (42)` into `r1.0`", PullRequestTitle(pr, "r1.0")); diff != "" {
		t.Errorf("unexpected title (-want +got):\n%s", diff)
	}
	expectedBody := "[🤖]: Hi @jdoe 👋,\n\nwe've cherry picked #42 into `r1.0` for you! 🚀\n\nPlease review and approve this cherry pick by your convenience!\n"
	if diff := cmp.Diff(expectedBody, PullRequestBody(pr, "r1.0")); diff != "" {
		t.Errorf("unexpected body (-want +got):\n%s", diff)
	}
}

func TestFailureMessage(t *testing.T) {
	pr := &github.PullRequest{Number: 42}
	testCases := []struct {
		name     string
		config   Config
		handle   string
		expected string
	}{
		{
			name:     "plain handle",
			handle:   "jdoe",
			expected: ":alert: Cherrypick bot 🤖: Hi @jdoe: Cherry-pick of <https://github.com/org/repo/pull/42|#42> into `r1.0` failed (3-way merge impossible). Please resolve manually and create a PR.",
		},
		{
			name:     "mapped member and group",
			config:   Config{SlackGroupID: "S0614TZR7", SlackUsers: map[string]string{"jdoe": "U024BE7LH"}},
			handle:   "jdoe",
			expected: ":alert: Cherrypick bot 🤖: Hi <@U024BE7LH>: Cherry-pick of <https://github.com/org/repo/pull/42|#42> into `r1.0` failed (3-way merge impossible). Please resolve manually and create a PR.\n\ncc: <!subteam^S0614TZR7>",
		},
		{
			name:     "unmapped handle",
			config:   Config{SlackUsers: map[string]string{"someone-else": "U1"}},
			handle:   "jdoe",
			expected: ":alert: Cherrypick bot 🤖: Hi @jdoe: Cherry-pick of <https://github.com/org/repo/pull/42|#42> into `r1.0` failed (3-way merge impossible). Please resolve manually and create a PR.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.config.failureMessage(tc.handle, pullRequestURL("org", "repo", pr), pr, "r1.0", reasonConflict)
			if diff := cmp.Diff(tc.expected, msg.Text); diff != "" {
				t.Errorf("unexpected message (-want +got):\n%s", diff)
			}
		})
	}
}
