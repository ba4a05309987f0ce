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

package fakegithub

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"k8s.io/release-cherrypicker/pkg/github"
)

const botName = "cherrypick-bot"

// FakeClient is an in-memory GitHub client for tests.
type FakeClient struct {
	PullRequests map[int]*github.PullRequest
	// NotCollaborators are rejected by RequestReview.
	NotCollaborators sets.String

	// Injected failures.
	GetPullRequestErr    error
	CreatePullRequestErr error
	RequestReviewErr     error
	AddLabelsErr         error

	// CreatedPullRequests holds pull requests opened through the client, in order.
	CreatedPullRequests []github.PullRequest
	// org/repo#number:reviewer
	ReviewersRequested []string
	// org/repo#number:label
	LabelsAdded []string

	nextNumber int
}

// NewFakeClient returns a client serving the given pull requests.
func NewFakeClient(prs ...github.PullRequest) *FakeClient {
	f := &FakeClient{
		PullRequests:     map[int]*github.PullRequest{},
		NotCollaborators: sets.NewString(),
		nextNumber:       1000,
	}
	for i := range prs {
		f.PullRequests[prs[i].Number] = &prs[i]
	}
	return f
}

func (f *FakeClient) BotUser() (*github.User, error) {
	return &github.User{Login: botName, ID: 4242}, nil
}

func (f *FakeClient) GetPullRequest(org, repo string, number int) (*github.PullRequest, error) {
	if f.GetPullRequestErr != nil {
		return nil, f.GetPullRequestErr
	}
	pr, ok := f.PullRequests[number]
	if !ok {
		return nil, fmt.Errorf("pull request %s/%s#%d not found", org, repo, number)
	}
	return pr, nil
}

func (f *FakeClient) CreatePullRequest(org, repo, title, body, head, base string, canModify bool) (int, error) {
	if f.CreatePullRequestErr != nil {
		return 0, f.CreatePullRequestErr
	}
	f.nextNumber++
	pr := github.PullRequest{
		Number:  f.nextNumber,
		Title:   title,
		Body:    body,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/pull/%d", org, repo, f.nextNumber),
		Head:    github.PullRequestBranch{Ref: head},
		Base:    github.PullRequestBranch{Ref: base},
		State:   "open",
	}
	f.CreatedPullRequests = append(f.CreatedPullRequests, pr)
	stored := pr
	f.PullRequests[pr.Number] = &stored
	return pr.Number, nil
}

func (f *FakeClient) RequestReview(org, repo string, number int, logins []string) error {
	if f.RequestReviewErr != nil {
		return f.RequestReviewErr
	}
	var missing []string
	for _, login := range logins {
		if f.NotCollaborators.Has(github.NormLogin(login)) {
			missing = append(missing, login)
			continue
		}
		f.ReviewersRequested = append(f.ReviewersRequested, fmt.Sprintf("%s/%s#%d:%s", org, repo, number, login))
	}
	if len(missing) > 0 {
		return github.MissingUsers{Users: missing}
	}
	return nil
}

func (f *FakeClient) AddLabels(org, repo string, number int, labels ...string) error {
	if f.AddLabelsErr != nil {
		return f.AddLabelsErr
	}
	for _, label := range labels {
		f.LabelsAdded = append(f.LabelsAdded, fmt.Sprintf("%s/%s#%d:%s", org, repo, number, label))
	}
	return nil
}
