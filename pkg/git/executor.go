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
	"strings"

	"github.com/sirupsen/logrus"
	utilexec "k8s.io/utils/exec"
)

// executor knows how to execute Git commands
type executor interface {
	Run(args ...string) ([]byte, error)
}

// Censor censors content to remove secrets
type Censor func(content []byte) []byte

// NewCensoringExecutor returns an executor running the git binary found on
// PATH inside dir. Output and arguments are censored before they are logged
// or returned, since remotes may carry credentials.
func NewCensoringExecutor(dir string, censor Censor, logger *logrus.Entry) (executor, error) {
	return newCensoringExecutor(utilexec.New(), dir, censor, logger)
}

func newCensoringExecutor(runner utilexec.Interface, dir string, censor Censor, logger *logrus.Entry) (*censoringExecutor, error) {
	g, err := runner.LookPath("git")
	if err != nil {
		return nil, err
	}
	if censor == nil {
		censor = func(content []byte) []byte { return content }
	}
	return &censoringExecutor{
		logger: logger.WithField("client", "git"),
		dir:    dir,
		git:    g,
		censor: censor,
		exec:   runner,
	}, nil
}

type censoringExecutor struct {
	// logger will be used to log git operations
	logger *logrus.Entry
	// dir is the location of this repo.
	dir string
	// git is the path to the git binary.
	git string
	// censor removes sensitive data from output
	censor Censor
	// exec creates the commands
	exec utilexec.Interface
}

func (e *censoringExecutor) Run(args ...string) ([]byte, error) {
	logger := e.logger.WithField("args", string(e.censor([]byte(strings.Join(args, " ")))))
	c := e.exec.Command(e.git, args...)
	c.SetDir(e.dir)
	b, err := c.CombinedOutput()
	b = e.censor(b)
	if err != nil {
		logger.WithError(err).WithField("output", string(b)).Debug("Running command failed.")
	} else {
		logger.Debug("Running command succeeded.")
	}
	return b, err
}
