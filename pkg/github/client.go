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

// Package github is a minimal client for the GitHub REST API. Calls are not
// retried: a failed call fails the run and CI surfaces it.
package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"k8s.io/release-cherrypicker/pkg/version"
)

// DefaultAPIEndpoint is the public GitHub API.
const DefaultAPIEndpoint = "https://api.github.com"

const (
	acceptHeader  = "application/vnd.github+json"
	apiVersion    = "2022-11-28"
	clientTimeout = time.Minute
)

type Client struct {
	logger *logrus.Entry
	client *http.Client
	base   string
	dry    bool

	userAgent string

	// botUser is protected by this mutex.
	mut     sync.Mutex
	botUser *User
}

// NewClient creates a new fully operational GitHub client. The token is read
// through getToken on every request.
func NewClient(getToken func() []byte, base string) *Client {
	return newClient(getToken, base, false, http.DefaultTransport)
}

// NewDryRunClient creates a new client that will not perform mutating actions
// such as creating pull requests or labeling, but it will still query GitHub
// and use up API tokens.
func NewDryRunClient(getToken func() []byte, base string) *Client {
	return newClient(getToken, base, true, http.DefaultTransport)
}

func newClient(getToken func() []byte, base string, dry bool, transport http.RoundTripper) *Client {
	return &Client{
		logger: logrus.WithField("client", "github"),
		client: &http.Client{
			Transport: &oauth2.Transport{
				Source: &reloadingTokenSource{getToken: getToken},
				Base:   transport,
			},
			Timeout: clientTimeout,
		},
		base:      strings.TrimSuffix(base, "/"),
		dry:       dry,
		userAgent: version.UserAgent(),
	}
}

// reloadingTokenSource hands out whatever the secret agent currently holds.
type reloadingTokenSource struct {
	getToken func() []byte
}

func (s *reloadingTokenSource) Token() (*oauth2.Token, error) {
	token := strings.TrimSpace(string(s.getToken()))
	if token == "" {
		return nil, errors.New("GitHub token is empty")
	}
	return &oauth2.Token{AccessToken: token}, nil
}

func (c *Client) log(methodName string, args ...interface{}) {
	if c.logger == nil {
		return
	}
	var as []string
	for _, arg := range args {
		as = append(as, fmt.Sprintf("%v", arg))
	}
	c.logger.Debugf("%s(%s)", methodName, strings.Join(as, ", "))
}

type request struct {
	method      string
	path        string
	accept      string
	requestBody interface{}
	exitCodes   []int
}

type requestError struct {
	ClientError
	StatusCode  int
	ErrorString string
}

func (r requestError) Error() string {
	return r.ErrorString
}

// StatusCode returns the HTTP status code carried by err, or 0 when err did
// not come from an unexpected API response.
func StatusCode(err error) int {
	var reqErr requestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// Make a request. If ret is not nil, unmarshal the response body into it.
// Returns an error if the exit code is not one of the provided codes.
func (c *Client) request(r *request, ret interface{}) (int, error) {
	if c.dry && r.method != http.MethodGet {
		c.logger.WithField("method", r.method).WithField("path", r.path).Info("Not sending mutating request in dry-run mode.")
		return r.exitCodes[0], nil
	}
	resp, err := c.doRequest(r.method, c.base+r.path, r.accept, r.requestBody)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	var okCode bool
	for _, code := range r.exitCodes {
		if code == resp.StatusCode {
			okCode = true
			break
		}
	}
	if !okCode {
		clientError := ClientError{}
		if err := json.Unmarshal(b, &clientError); err != nil {
			c.logger.WithError(err).Debug("Error body is not a GitHub client error.")
		}
		return resp.StatusCode, requestError{
			ClientError: clientError,
			StatusCode:  resp.StatusCode,
			ErrorString: fmt.Sprintf("%s %s: status code %d not one of %v, body: %s", r.method, r.path, resp.StatusCode, r.exitCodes, string(b)),
		}
	}
	if ret != nil {
		if err := json.Unmarshal(b, ret); err != nil {
			return 0, fmt.Errorf("could not decode response to %s %s: %w", r.method, r.path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) doRequest(method, path, accept string, body interface{}) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, path, buf)
	if err != nil {
		return nil, err
	}
	if accept == "" {
		req.Header.Add("Accept", acceptHeader)
	} else {
		req.Header.Add("Accept", accept)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	return c.client.Do(req)
}

// BotUser returns the user the token authenticates as.
func (c *Client) BotUser() (*User, error) {
	c.mut.Lock()
	defer c.mut.Unlock()
	if c.botUser == nil {
		c.log("BotUser")
		var u User
		_, err := c.request(&request{
			method:    http.MethodGet,
			path:      "/user",
			exitCodes: []int{200},
		}, &u)
		if err != nil {
			return nil, fmt.Errorf("fetching bot user from GitHub: %w", err)
		}
		c.botUser = &u
	}
	return c.botUser, nil
}

// GetPullRequest gets a pull request.
func (c *Client) GetPullRequest(org, repo string, number int) (*PullRequest, error) {
	c.log("GetPullRequest", org, repo, number)
	var pr PullRequest
	_, err := c.request(&request{
		method:    http.MethodGet,
		path:      fmt.Sprintf("/repos/%s/%s/pulls/%d", org, repo, number),
		exitCodes: []int{200},
	}, &pr)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// CreatePullRequest creates a new pull request and returns its number if
// the creation is successful, otherwise any error that is encountered.
// Dry-run clients return 0.
func (c *Client) CreatePullRequest(org, repo, title, body, head, base string, canModify bool) (int, error) {
	c.log("CreatePullRequest", org, repo, title)
	data := struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Head  string `json:"head"`
		Base  string `json:"base"`
		// MaintainerCanModify allows maintainers of the repo to modify this
		// pull request, eg. push changes to it before merging.
		MaintainerCanModify bool `json:"maintainer_can_modify"`
	}{
		Title: title,
		Body:  body,
		Head:  head,
		Base:  base,

		MaintainerCanModify: canModify,
	}
	var resp struct {
		Num int `json:"number"`
	}
	_, err := c.request(&request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/repos/%s/%s/pulls", org, repo),
		requestBody: &data,
		exitCodes:   []int{201},
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Num, nil
}

// AddLabels adds labels to an issue or pull request. Labels that do not
// exist yet are created by GitHub.
func (c *Client) AddLabels(org, repo string, number int, labels ...string) error {
	c.log("AddLabels", org, repo, number, labels)
	_, err := c.request(&request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/repos/%s/%s/issues/%d/labels", org, repo, number),
		requestBody: map[string][]string{"labels": labels},
		exitCodes:   []int{200},
	}, nil)
	return err
}

// MissingUsers is returned when some users could not be acted upon.
type MissingUsers struct {
	Users  []string
	action string
}

func (m MissingUsers) Error() string {
	return fmt.Sprintf("could not %s the following user(s): %s.", m.action, strings.Join(m.Users, ", "))
}

func (c *Client) tryRequestReview(org, repo string, number int, logins []string) (int, error) {
	c.log("RequestReview", org, repo, number, logins)
	return c.request(&request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/repos/%s/%s/pulls/%d/requested_reviewers", org, repo, number),
		requestBody: map[string][]string{"reviewers": logins},
		exitCodes:   []int{http.StatusCreated /*201*/},
	}, nil)
}

// RequestReview tries to add the users listed in 'logins' as requested reviewers of the specified PR.
// If any user in the 'logins' slice is not a collaborator of the repo, the entire POST fails
// without adding any reviewers and GitHub does not say which user was rejected, so each
// login is then requested individually. Users GitHub refuses are reported as MissingUsers.
func (c *Client) RequestReview(org, repo string, number int, logins []string) error {
	statusCode, err := c.tryRequestReview(org, repo, number, logins)
	if err != nil && statusCode == http.StatusUnprocessableEntity /*422*/ {
		missing := MissingUsers{action: "request a PR review from"}
		for _, user := range logins {
			statusCode, err = c.tryRequestReview(org, repo, number, []string{user})
			if err != nil && statusCode == http.StatusUnprocessableEntity /*422*/ {
				// User is not a collaborator, or is the pull request author.
				missing.Users = append(missing.Users, user)
			} else if err != nil {
				return fmt.Errorf("failed to add reviewer to PR. Status code: %d, errmsg: %w", statusCode, err)
			}
		}
		if len(missing.Users) > 0 {
			return missing
		}
		return nil
	}
	return err
}
