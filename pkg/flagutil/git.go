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

package flagutil

import (
	"errors"
	"flag"
	"fmt"

	"k8s.io/release-cherrypicker/pkg/config/secret"
	"k8s.io/release-cherrypicker/pkg/git"
	"k8s.io/release-cherrypicker/pkg/github"
	"k8s.io/release-cherrypicker/pkg/secretutil"
)

// BotUserClient resolves the identity behind the GitHub token.
type BotUserClient interface {
	BotUser() (*github.User, error)
}

// GitOptions holds options for interacting with git.
type GitOptions struct {
	host           string
	remoteName     string
	user           string
	email          string
	tokenPath      string
	useGitHubToken bool
	useGitHubUser  bool
}

// AddFlags injects Git options into the given FlagSet.
func (o *GitOptions) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.host, "git-host", "github.com", "host to contact for git operations.")
	fs.StringVar(&o.remoteName, "git-remote", "origin", "Name of the configured remote to use when no token is given, so that the credentials of the CI checkout are reused.")
	fs.StringVar(&o.user, "git-user", "", "User for git commits, optional. Can be derived from GitHub credentials.")
	fs.StringVar(&o.email, "git-email", "", "Email for git commits, optional. Can be derived from GitHub credentials.")
	fs.StringVar(&o.tokenPath, "git-token-path", "", "Path to the file containing the git token for HTTPS operations, optional.")
	fs.BoolVar(&o.useGitHubToken, "git-token-from-github", false, "Use the GitHub token for HTTPS git operations.")
	fs.BoolVar(&o.useGitHubUser, "git-user-from-github", false, "Use the identity of the GitHub token owner for git commits.")
}

// Validate validates Git options.
func (o *GitOptions) Validate(bool) error {
	if o.host == "" {
		return errors.New("--git-host is required")
	}
	if o.tokenPath != "" && o.useGitHubToken {
		return errors.New("--git-token-path and --git-token-from-github are mutually exclusive")
	}
	if o.tokenPath == "" && !o.useGitHubToken && o.remoteName == "" {
		return errors.New("--git-remote is required when no git token is configured")
	}
	if (o.user == "") != (o.email == "") {
		return errors.New("--git-user and --git-email must be set together")
	}
	if o.user != "" && o.useGitHubUser {
		return errors.New("--git-user is mutually exclusive with --git-user-from-github")
	}
	return nil
}

// GitClient creates a new git client factory. When a token is configured it
// is registered with the secret agent so it never shows up in output.
func (o *GitOptions) GitClient(secretAgent *secret.Agent, githubTokenPath string, dryRun bool) (git.ClientFactory, error) {
	if secretAgent == nil {
		return nil, errors.New("a secret agent is required to build a git client")
	}
	path := o.tokenPath
	if o.useGitHubToken {
		path = githubTokenPath
	}
	var token git.TokenGetter
	if path != "" {
		if err := secretAgent.Add(path); err != nil {
			return nil, fmt.Errorf("failed to add git token to secret agent: %w", err)
		}
		generator := secretAgent.GetTokenGenerator(path)
		token = func() (string, error) {
			return string(generator()), nil
		}
	}
	return git.NewClientFactory(git.ClientFactoryOpts{
		Host:       o.host,
		RemoteName: o.remoteName,
		Token:      token,
		Censor:     secretutil.AdaptCensorer(secretAgent),
		DryRun:     dryRun,
	}), nil
}

// GitUser returns the identity to commit as. Both values are empty when
// nothing was configured and the checkout's identity should be kept.
func (o *GitOptions) GitUser(userClient BotUserClient) (name, email string, err error) {
	if o.user != "" {
		return o.user, o.email, nil
	}
	if !o.useGitHubUser {
		return "", "", nil
	}
	user, err := userClient.BotUser()
	if err != nil {
		return "", "", err
	}
	name, email = user.Login, user.Email
	if user.Name != "" {
		name = user.Name
	}
	if email == "" {
		email = user.NoReplyEmail()
	}
	return name, email, nil
}
