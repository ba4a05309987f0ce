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
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/yaml"
)

// DefaultLabels classify every cherry-pick pull request.
var DefaultLabels = []string{"Run CICD", "cherry-pick"}

// Config holds the behavior settings of a run. All fields are optional.
type Config struct {
	// BaseBranch is the integration branch the triggering commit landed on.
	BaseBranch string `json:"baseBranch,omitempty"`
	// BranchPattern selects release branch labels. It must match a whole label.
	BranchPattern string `json:"branchPattern,omitempty"`
	// Labels are added to every created pull request.
	Labels []string `json:"labels,omitempty"`
	// SlackGroupID is a user group copied on failure notifications.
	SlackGroupID string `json:"slackGroupID,omitempty"`
	// SlackUsers maps author handles to Slack member IDs for real mentions.
	SlackUsers map[string]string `json:"slackUsers,omitempty"`

	branchRe *regexp.Regexp
}

// LoadConfig reads a YAML config from path, or uses defaults when path is
// empty. Unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.UnmarshalStrict(raw, c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	c.Default()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default fills unset fields.
func (c *Config) Default() {
	if c.BaseBranch == "" {
		c.BaseBranch = "main"
	}
	if c.BranchPattern == "" {
		c.BranchPattern = DefaultBranchPattern
	}
	if c.Labels == nil {
		c.Labels = append([]string(nil), DefaultLabels...)
	}
}

// Validate checks the config and compiles the branch pattern.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.BaseBranch) == "" {
		errs = append(errs, errors.New("baseBranch must not be empty"))
	}
	re, err := regexp.Compile(`^(?:` + c.BranchPattern + `)$`)
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid branchPattern %q: %w", c.BranchPattern, err))
	} else {
		c.branchRe = re
		if re.MatchString(c.BaseBranch) {
			errs = append(errs, fmt.Errorf("branchPattern %q matches baseBranch %q", c.BranchPattern, c.BaseBranch))
		}
	}
	for i, label := range c.Labels {
		if strings.TrimSpace(label) == "" {
			errs = append(errs, fmt.Errorf("labels[%d] is empty", i))
		}
	}
	return utilerrors.NewAggregate(errs)
}

// BranchRegexp returns the compiled, anchored branch pattern.
func (c *Config) BranchRegexp() *regexp.Regexp {
	if c.branchRe == nil {
		return defaultBranchRe
	}
	return c.branchRe
}
