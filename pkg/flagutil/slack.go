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
	"k8s.io/release-cherrypicker/pkg/slack"
)

// SlackOptions holds options for posting to Slack.
type SlackOptions struct {
	WebhookPath string
}

// AddFlags injects Slack options into the given FlagSet.
func (o *SlackOptions) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.WebhookPath, "slack-webhook-path", "", "Path to the file containing the Slack incoming webhook URL.")
}

// Validate validates Slack options. The webhook is optional in dry-run mode.
func (o *SlackOptions) Validate(dryRun bool) error {
	if o.WebhookPath == "" && !dryRun {
		return errors.New("--slack-webhook-path is required")
	}
	return nil
}

// SlackClient returns a Slack client reading the webhook through secretAgent.
func (o *SlackOptions) SlackClient(secretAgent *secret.Agent, dryRun bool) (*slack.Client, error) {
	if o.WebhookPath == "" {
		return slack.NewDryRunClient(func() []byte { return nil }), nil
	}
	if secretAgent == nil {
		return nil, fmt.Errorf("cannot store webhook from %q without a secret agent", o.WebhookPath)
	}
	if err := secretAgent.Add(o.WebhookPath); err != nil {
		return nil, fmt.Errorf("failed to add Slack webhook to secret agent: %w", err)
	}
	generator := secretAgent.GetTokenGenerator(o.WebhookPath)
	if dryRun {
		return slack.NewDryRunClient(generator), nil
	}
	return slack.NewClient(generator), nil
}
