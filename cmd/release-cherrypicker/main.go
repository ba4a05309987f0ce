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

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"k8s.io/release-cherrypicker/pkg/cherrypicker"
	"k8s.io/release-cherrypicker/pkg/config/secret"
	"k8s.io/release-cherrypicker/pkg/flagutil"
	"k8s.io/release-cherrypicker/pkg/logrusutil"
	"k8s.io/release-cherrypicker/pkg/metrics"
	"k8s.io/release-cherrypicker/pkg/version"
)

type options struct {
	repo       string
	workspace  string
	configPath string
	baseBranch string
	labels     flagutil.Strings
	dryRun     bool
	logLevel   string

	github  flagutil.GitHubOptions
	git     flagutil.GitOptions
	slack   flagutil.SlackOptions
	metrics flagutil.MetricsOptions
}

func gatherOptions(fs *flag.FlagSet, args ...string) options {
	var o options
	workspace := os.Getenv("GITHUB_WORKSPACE")
	if workspace == "" {
		workspace = "."
	}
	fs.StringVar(&o.repo, "repo", os.Getenv("GITHUB_REPOSITORY"), "Repository to cherry-pick in, as org/repo.")
	fs.StringVar(&o.workspace, "workspace", workspace, "Directory holding the checkout of the integration branch.")
	fs.StringVar(&o.configPath, "config-path", "", "Path to an optional YAML config file.")
	fs.StringVar(&o.baseBranch, "base-branch", "", "Integration branch to return to after each cherry-pick, overrides the config.")
	fs.Var(&o.labels, "label", "Label to add to created pull requests, overrides the config. Can be passed multiple times.")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Dry run for testing. Uses API tokens but does not push, mutate GitHub or post to Slack.")
	fs.StringVar(&o.logLevel, "log-level", "info", fmt.Sprintf("Log level is one of %v.", logrus.AllLevels))
	for _, group := range []interface{ AddFlags(*flag.FlagSet) }{&o.github, &o.git, &o.slack, &o.metrics} {
		group.AddFlags(fs)
	}
	// ExitOnError flag sets never return an error here.
	_ = fs.Parse(args)
	return o
}

func (o *options) Validate() error {
	var errs []error
	if parts := strings.Split(o.repo, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		errs = append(errs, fmt.Errorf("--repo must be in org/repo format, got %q", o.repo))
	}
	if o.workspace == "" {
		errs = append(errs, errors.New("--workspace is required"))
	}
	if _, err := logrus.ParseLevel(o.logLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid --log-level: %w", err))
	}
	for _, group := range []interface{ Validate(bool) error }{&o.github, &o.git, &o.slack, &o.metrics} {
		if err := group.Validate(o.dryRun); err != nil {
			errs = append(errs, err)
		}
	}
	return utilerrors.NewAggregate(errs)
}

func (o *options) orgRepo() (string, string) {
	parts := strings.SplitN(o.repo, "/", 2)
	return parts[0], parts[1]
}

// secretPaths lists the credential files known before any client is built,
// so that all missing ones are reported at once.
func (o *options) secretPaths() []string {
	var paths []string
	for _, path := range []string{o.github.TokenPath, o.slack.WebhookPath} {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// loadConfig reads the config file and applies flag overrides on top.
func (o *options) loadConfig() (*cherrypicker.Config, error) {
	cfg, err := cherrypicker.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.baseBranch != "" {
		cfg.BaseBranch = o.baseBranch
	}
	if labels := o.labels.Strings(); len(labels) > 0 {
		cfg.Labels = labels
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	o := gatherOptions(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:]...)
	if err := o.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid options")
	}
	level, _ := logrus.ParseLevel(o.logLevel)
	logrus.SetLevel(level)

	secretAgent := &secret.Agent{}
	logrusutil.ComponentInit(secretAgent)
	if err := secretAgent.Start(o.secretPaths()); err != nil {
		logrus.WithError(err).Fatal("Error starting secrets agent.")
	}

	m := metrics.New()
	outcomes, err := run(o, secretAgent)
	for _, outcome := range outcomes {
		m.RecordOutcome(string(outcome.Kind))
	}
	if err != nil {
		m.RecordFailure()
	}
	if o.metrics.Enabled() {
		org, repo := o.orgRepo()
		if pushErr := m.Push(o.metrics.PushGateway, o.metrics.Job, map[string]string{"org": org, "repo": repo}); pushErr != nil {
			logrus.WithError(pushErr).Warn("Failed to push metrics.")
		}
	}
	if err != nil {
		logrus.WithError(err).Fatal("Cherry-pick run failed.")
	}
}

func run(o options, secretAgent *secret.Agent) ([]cherrypicker.Outcome, error) {
	log := logrus.WithField("dry-run", o.dryRun)
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	githubClient, err := o.github.GitHubClient(secretAgent, o.dryRun)
	if err != nil {
		return nil, fmt.Errorf("error getting GitHub client: %w", err)
	}
	slackClient, err := o.slack.SlackClient(secretAgent, o.dryRun)
	if err != nil {
		return nil, fmt.Errorf("error getting Slack client: %w", err)
	}
	gitClientFactory, err := o.git.GitClient(secretAgent, o.github.TokenPath, o.dryRun)
	if err != nil {
		return nil, fmt.Errorf("error getting git client: %w", err)
	}

	org, repo := o.orgRepo()
	repoClient, err := gitClientFactory.RepoFromDir(org, repo, o.workspace)
	if err != nil {
		return nil, fmt.Errorf("error opening workspace: %w", err)
	}
	gitName, gitEmail, err := o.git.GitUser(githubClient)
	if err != nil {
		return nil, fmt.Errorf("error resolving git identity: %w", err)
	}

	log.WithField("version", version.Version).Info("Starting cherry-pick run.")
	c := &cherrypicker.Cherrypicker{
		Org:      org,
		Repo:     repo,
		Git:      repoClient,
		GitHub:   githubClient,
		Slack:    slackClient,
		Config:   cfg,
		GitName:  gitName,
		GitEmail: gitEmail,
		Log:      log,
	}
	outcomes, err := c.Run()
	cherrypicker.LogSummary(log, outcomes)
	return outcomes, err
}
