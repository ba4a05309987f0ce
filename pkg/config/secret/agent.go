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

// Package secret loads credentials injected as files by the CI platform and
// makes sure their values never reach the logs.
package secret

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"k8s.io/release-cherrypicker/pkg/secretutil"
)

// Agent holds the contents of secret files, keyed by path.
// The run is short-lived, so secrets are read once and never reloaded.
type Agent struct {
	lock    sync.RWMutex
	secrets map[string][]byte
	censor  *secretutil.ReplacingCensorer
}

// Start loads every path and refreshes the censorer once.
func (a *Agent) Start(paths []string) error {
	a.lock.Lock()
	a.init()
	var errs []error
	for _, path := range paths {
		value, err := LoadSingleSecret(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a.secrets[path] = value
	}
	a.lock.Unlock()
	a.refreshCensor()
	return utilerrors.NewAggregate(errs)
}

// Add loads one more secret file, replacing any value already held for path.
func (a *Agent) Add(path string) error {
	value, err := LoadSingleSecret(path)
	if err != nil {
		return err
	}
	a.lock.Lock()
	a.init()
	a.secrets[path] = value
	a.lock.Unlock()
	a.refreshCensor()
	return nil
}

// GetSecret returns the value loaded for path, or nil.
func (a *Agent) GetSecret(path string) []byte {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.secrets[path]
}

// GetTokenGenerator returns a function that gets the value of the given secret.
func (a *Agent) GetTokenGenerator(path string) func() []byte {
	return func() []byte {
		return a.GetSecret(path)
	}
}

// Censor replaces every loaded secret in content.
func (a *Agent) Censor(content *[]byte) {
	a.lock.RLock()
	censor := a.censor
	a.lock.RUnlock()
	if censor == nil {
		return
	}
	censor.Censor(content)
}

func (a *Agent) init() {
	if a.secrets == nil {
		a.secrets = map[string][]byte{}
	}
	if a.censor == nil {
		a.censor = secretutil.NewCensorer()
	}
}

func (a *Agent) refreshCensor() {
	a.lock.RLock()
	values := make([][]byte, 0, len(a.secrets))
	for _, value := range a.secrets {
		values = append(values, value)
	}
	censor := a.censor
	a.lock.RUnlock()
	censor.RefreshBytes(values...)
	logrus.WithField("secrets", len(values)).Debug("Refreshed censored secrets.")
}

// LoadSingleSecret reads and returns the value of a single file, with
// surrounding whitespace trimmed. Values spanning lines are rejected.
func LoadSingleSecret(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	value := bytes.TrimSpace(raw)
	if bytes.ContainsAny(value, "\r\n") {
		return nil, fmt.Errorf("secret %s contains a line break", path)
	}
	return value, nil
}
