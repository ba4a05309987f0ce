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
	"fmt"

	"k8s.io/release-cherrypicker/pkg/github"
	"k8s.io/release-cherrypicker/pkg/slack"
)

// Failure reasons, shown to authors in notifications.
const (
	reasonConflict      = "3-way merge impossible"
	reasonFetch         = "could not fetch the target branch"
	reasonBranch        = "could not create the working branch"
	reasonCherryPick    = "git cherry-pick failed"
	reasonPush          = "could not push the working branch"
	reasonMissingRemote = "branch does not exist upstream"
)

// PullRequestTitle is the title of the pull request carrying a cherry-pick.
func PullRequestTitle(original *github.PullRequest, target string) string {
	return fmt.Sprintf("Cherry pick `%s (%d)` into `%s`", original.Title, original.Number, target)
}

// PullRequestBody greets the original author and asks for a review.
func PullRequestBody(original *github.PullRequest, target string) string {
	return fmt.Sprintf("[🤖]: Hi @%s 👋,\n\nwe've cherry picked #%d into `%s` for you! 🚀\n\nPlease review and approve this cherry pick by your convenience!\n",
		original.User.Login, original.Number, target)
}

// pullRequestURL prefers the URL GitHub reported.
func pullRequestURL(org, repo string, pr *github.PullRequest) string {
	if pr.HTMLURL != "" {
		return pr.HTMLURL
	}
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", org, repo, pr.Number)
}

// failureMessage tells the author that target needs a manual cherry-pick.
func (c *Config) failureMessage(handle, url string, original *github.PullRequest, target, reason string) slack.Message {
	mention := slack.Mention(handle)
	if id, ok := c.SlackUsers[handle]; ok && id != "" {
		mention = slack.UserMention(id)
	}
	text := fmt.Sprintf(":alert: Cherrypick bot 🤖: Hi %s: Cherry-pick of %s into `%s` failed (%s). Please resolve manually and create a PR.",
		mention, slack.Link(url, fmt.Sprintf("#%d", original.Number)), slack.EscapeMessage(target), reason)
	if c.SlackGroupID != "" {
		text += "\n\ncc: " + slack.GroupMention(c.SlackGroupID)
	}
	return slack.Message{Text: text}
}
