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
	"net/url"

	"github.com/sirupsen/logrus"

	"k8s.io/release-cherrypicker/pkg/config/secret"
	"k8s.io/release-cherrypicker/pkg/github"
)

// DefaultGitHubTokenPath is where CI mounts the GitHub token by default.
const DefaultGitHubTokenPath = "/etc/github/oauth" // Exported for testing purposes

// GitHubOptions holds options for interacting with GitHub.
type GitHubOptions struct {
	Endpoint  string
	TokenPath string
}

// AddFlags injects GitHub options into the given FlagSet
func (o *GitHubOptions) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Endpoint, "github-endpoint", github.DefaultAPIEndpoint, "GitHub's API endpoint (may differ for enterprise).")
	fs.StringVar(&o.TokenPath, "github-token-path", DefaultGitHubTokenPath, "Path to the file containing the GitHub OAuth secret.")
}

// Validate validates GitHub options. Note that validate defaults an empty endpoint.
func (o *GitHubOptions) Validate(bool) error {
	if o.Endpoint == "" {
		o.Endpoint = github.DefaultAPIEndpoint
	} else if _, err := url.ParseRequestURI(o.Endpoint); err != nil {
		return fmt.Errorf("invalid --github-endpoint URI: %q", o.Endpoint)
	}
	if o.TokenPath == "" {
		return errors.New("--github-token-path is required")
	}
	return nil
}

// GitHubClient returns a GitHub client reading its token through secretAgent.
func (o *GitHubOptions) GitHubClient(secretAgent *secret.Agent, dryRun bool) (*github.Client, error) {
	if secretAgent == nil {
		return nil, fmt.Errorf("cannot store token from %q without a secret agent", o.TokenPath)
	}
	if err := secretAgent.Add(o.TokenPath); err != nil {
		return nil, fmt.Errorf("failed to add GitHub token to secret agent: %w", err)
	}
	generator := secretAgent.GetTokenGenerator(o.TokenPath)
	if dryRun {
		logrus.WithField("endpoint", o.Endpoint).Info("Using dry-run GitHub client.")
		return github.NewDryRunClient(generator, o.Endpoint), nil
	}
	return github.NewClient(generator, o.Endpoint), nil
}
