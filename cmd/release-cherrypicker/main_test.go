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
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherOptions(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "NVIDIA/NeMo")
	t.Setenv("GITHUB_WORKSPACE", "/github/workspace")

	o := gatherOptions(flag.NewFlagSet("test", flag.ContinueOnError),
		"--label", "backport",
		"--label", "Run CICD",
		"--dry-run",
		"--base-branch", "develop",
	)
	assert.Equal(t, "NVIDIA/NeMo", o.repo)
	assert.Equal(t, "/github/workspace", o.workspace)
	assert.Equal(t, "develop", o.baseBranch)
	assert.True(t, o.dryRun)
	assert.Equal(t, "info", o.logLevel)
	if diff := cmp.Diff([]string{"backport", "Run CICD"}, o.labels.Strings()); diff != "" {
		t.Errorf("unexpected labels: %s", diff)
	}
	assert.Equal(t, "/etc/github/oauth", o.github.TokenPath)
	assert.Equal(t, "release-cherrypicker", o.metrics.Job)
}

func TestGatherOptionsWorkspaceDefault(t *testing.T) {
	t.Setenv("GITHUB_WORKSPACE", "")
	o := gatherOptions(flag.NewFlagSet("test", flag.ContinueOnError))
	assert.Equal(t, ".", o.workspace)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "dry run needs no webhook",
			args: []string{"--repo", "org/repo", "--dry-run"},
		},
		{
			name: "webhook given",
			args: []string{"--repo", "org/repo", "--slack-webhook-path", "/etc/slack/webhook"},
		},
		{
			name:      "webhook required outside dry run",
			args:      []string{"--repo", "org/repo"},
			expectErr: true,
		},
		{
			name:      "repo without org",
			args:      []string{"--repo", "repo", "--dry-run"},
			expectErr: true,
		},
		{
			name:      "repo with extra segment",
			args:      []string{"--repo", "org/repo/extra", "--dry-run"},
			expectErr: true,
		},
		{
			name:      "empty repo",
			args:      []string{"--repo", "", "--dry-run"},
			expectErr: true,
		},
		{
			name:      "bad log level",
			args:      []string{"--repo", "org/repo", "--dry-run", "--log-level", "loud"},
			expectErr: true,
		},
		{
			name:      "bad pushgateway",
			args:      []string{"--repo", "org/repo", "--dry-run", "--pushgateway-endpoint", "not a url"},
			expectErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_REPOSITORY", "")
			o := gatherOptions(flag.NewFlagSet(tc.name, flag.ContinueOnError), tc.args...)
			err := o.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrgRepo(t *testing.T) {
	o := options{repo: "NVIDIA/NeMo"}
	org, repo := o.orgRepo()
	assert.Equal(t, "NVIDIA", org)
	assert.Equal(t, "NeMo", repo)
}

func TestSecretPaths(t *testing.T) {
	o := gatherOptions(flag.NewFlagSet("test", flag.ContinueOnError), "--dry-run")
	if diff := cmp.Diff([]string{"/etc/github/oauth"}, o.secretPaths()); diff != "" {
		t.Errorf("unexpected paths without a webhook: %s", diff)
	}

	o = gatherOptions(flag.NewFlagSet("test", flag.ContinueOnError), "--slack-webhook-path", "/etc/slack/webhook")
	if diff := cmp.Diff([]string{"/etc/github/oauth", "/etc/slack/webhook"}, o.secretPaths()); diff != "" {
		t.Errorf("unexpected paths with a webhook: %s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseBranch: main\nlabels:\n- cherry-pick\nslackGroupID: S123\n"), 0o644))

	testCases := []struct {
		name           string
		args           []string
		expectedBase   string
		expectedLabels []string
		expectErr      bool
	}{
		{
			name:           "defaults without a file",
			expectedBase:   "main",
			expectedLabels: []string{"Run CICD", "cherry-pick"},
		},
		{
			name:           "file values",
			args:           []string{"--config-path", path},
			expectedBase:   "main",
			expectedLabels: []string{"cherry-pick"},
		},
		{
			name:           "flags override the file",
			args:           []string{"--config-path", path, "--base-branch", "develop", "--label", "backport"},
			expectedBase:   "develop",
			expectedLabels: []string{"backport"},
		},
		{
			name:      "base branch overridden into the release pattern",
			args:      []string{"--base-branch", "r2.0.0"},
			expectErr: true,
		},
		{
			name:      "missing file",
			args:      []string{"--config-path", filepath.Join(dir, "missing.yaml")},
			expectErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := gatherOptions(flag.NewFlagSet(tc.name, flag.ContinueOnError), tc.args...)
			cfg, err := o.loadConfig()
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedBase, cfg.BaseBranch)
			if diff := cmp.Diff(tc.expectedLabels, cfg.Labels); diff != "" {
				t.Errorf("unexpected labels: %s", diff)
			}
		})
	}
}
