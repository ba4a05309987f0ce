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

package git

import (
	"errors"
	"fmt"
	"net/url"
)

// RemoteResolverFactory knows how to construct remote resolvers for the
// authoritative central remote of a repository. Resolvers are called at
// run-time so that credentials are read as late as possible.
type RemoteResolverFactory interface {
	CentralRemote(org, repo string) RemoteResolver
}

// RemoteResolver knows how to construct a remote URL for git calls
type RemoteResolver func() (string, error)

// TokenGetter fetches a GitHub OAuth token on-demand
type TokenGetter func() (string, error)

// TokenUser is the user name GitHub expects alongside installation and
// Actions tokens in basic-auth remotes.
const TokenUser = "x-access-token"

// namedRemoteResolverFactory refers to a remote already configured in the
// workspace, relying on whatever credentials the checkout left behind.
type namedRemoteResolverFactory struct {
	name string
}

func (f *namedRemoteResolverFactory) CentralRemote(_, _ string) RemoteResolver {
	return func() (string, error) {
		return f.name, nil
	}
}

type httpResolverFactory struct {
	host string
	// Optional, remotes are anonymous without a token
	token TokenGetter
}

// CentralRemote creates a remote resolver that refers to an authoritative remote
// for the repository.
func (f *httpResolverFactory) CentralRemote(org, repo string) RemoteResolver {
	return func() (string, error) {
		return f.resolve(org, repo)
	}
}

// resolve builds the URL string for the given org/repo remote identifier
func (f *httpResolverFactory) resolve(org, repo string) (string, error) {
	if org == "" || repo == "" {
		return "", errors.New("org and repo are required to build a remote")
	}
	remote := &url.URL{Scheme: "https", Host: f.host, Path: fmt.Sprintf("%s/%s", org, repo)}

	if f.token != nil {
		token, err := f.token()
		if err != nil {
			return "", fmt.Errorf("could not resolve token: %w", err)
		}
		if token == "" {
			return "", errors.New("token for remote is empty")
		}
		remote.User = url.UserPassword(TokenUser, token)
	}

	return remote.String(), nil
}
