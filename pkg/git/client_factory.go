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
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ClientFactory knows how to create clients for repos
type ClientFactory interface {
	// RepoFromDir creates a client that operates on a repo that has already
	// been cloned to the given directory.
	RepoFromDir(org, repo, dir string) (RepoClient, error)
}

// RepoClient exposes interactions with a git repo
type RepoClient interface {
	Publisher
	Interactor
}

type repoClient struct {
	publisher
	interactor
}

// ClientFactoryOpts configures how remotes are reached.
type ClientFactoryOpts struct {
	// Host is the git host, github.com unless overridden.
	Host string
	// RemoteName is used as-is when no Token is given, so that the
	// credentials of the CI checkout are reused.
	RemoteName string
	// Token enables authenticated https remotes, with x-access-token as user.
	Token TokenGetter
	// Censor removes secrets from command output.
	Censor Censor
	// DryRun skips pushes.
	DryRun bool
}

// NewClientFactory returns a ClientFactory for the given options.
func NewClientFactory(opts ClientFactoryOpts) ClientFactory {
	var remotes RemoteResolverFactory
	if opts.Token != nil {
		host := opts.Host
		if host == "" {
			host = "github.com"
		}
		remotes = &httpResolverFactory{
			host:  host,
			token: opts.Token,
		}
	} else {
		name := opts.RemoteName
		if name == "" {
			name = "origin"
		}
		remotes = &namedRemoteResolverFactory{name: name}
	}
	return &clientFactory{
		remotes: remotes,
		censor:  opts.Censor,
		dryRun:  opts.DryRun,
		logger:  logrus.WithField("client", "git"),
	}
}

type clientFactory struct {
	remotes RemoteResolverFactory
	censor  Censor
	dryRun  bool
	logger  *logrus.Entry
}

// RepoFromDir returns a repository client for a directory that's already initialized with content.
func (c *clientFactory) RepoFromDir(org, repo, dir string) (RepoClient, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("could not use workspace %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", dir)
	}
	logger := c.logger.WithFields(logrus.Fields{"org": org, "repo": repo})
	executor, err := NewCensoringExecutor(dir, c.censor, logger)
	if err != nil {
		return nil, err
	}
	remote := c.remotes.CentralRemote(org, repo)
	return &repoClient{
		publisher: publisher{
			executor: executor,
			remote:   remote,
			dryRun:   c.dryRun,
			logger:   logger,
		},
		interactor: interactor{
			executor: executor,
			remote:   remote,
			dir:      dir,
			logger:   logger,
		},
	}, nil
}
