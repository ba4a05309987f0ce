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

	"github.com/sirupsen/logrus"
)

// Publisher knows how to publish local work to a remote
type Publisher interface {
	// PushToCentral pushes the local state to the central remote
	PushToCentral(branch string, force bool) error
}

type publisher struct {
	executor executor
	remote   RemoteResolver
	dryRun   bool
	logger   *logrus.Entry
}

// PushToCentral pushes the local state of branch to the central remote.
// In dry-run mode the push is only logged.
func (p *publisher) PushToCentral(branch string, force bool) error {
	remote, err := p.remote()
	if err != nil {
		return fmt.Errorf("could not resolve remote for pushing: %w", err)
	}

	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote, branch)

	if p.dryRun {
		p.logger.WithField("force", force).Infof("Not pushing branch %q in dry-run mode", branch)
		return nil
	}
	p.logger.WithField("force", force).Infof("Pushing branch %q", branch)
	if out, err := p.executor.Run(args...); err != nil {
		return fmt.Errorf("error pushing %q: %w %v", branch, err, string(out))
	}
	return nil
}
