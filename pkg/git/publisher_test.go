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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func TestPublisher_PushToCentral(t *testing.T) {
	var testCases = []struct {
		name          string
		branch        string
		force         bool
		dryRun        bool
		remote        RemoteResolver
		responses     map[string]execResponse
		expectedCalls [][]string
		expectedErr   bool
	}{
		{
			name:   "force push works",
			branch: "cherry-pick-42-r1.0",
			force:  true,
			remote: staticRemote("origin"),
			responses: map[string]execResponse{
				"push --force origin cherry-pick-42-r1.0": {out: []byte("ok")},
			},
			expectedCalls: [][]string{
				{"push", "--force", "origin", "cherry-pick-42-r1.0"},
			},
		},
		{
			name:   "push without force",
			branch: "feature",
			remote: staticRemote("origin"),
			responses: map[string]execResponse{
				"push origin feature": {out: []byte("ok")},
			},
			expectedCalls: [][]string{
				{"push", "origin", "feature"},
			},
		},
		{
			name:          "dry run does not push",
			branch:        "cherry-pick-42-r1.0",
			force:         true,
			dryRun:        true,
			remote:        staticRemote("origin"),
			responses:     map[string]execResponse{},
			expectedCalls: [][]string{},
		},
		{
			name:   "remote resolution fails",
			branch: "feature",
			remote: func() (string, error) {
				return "", errors.New("oops")
			},
			responses:     map[string]execResponse{},
			expectedCalls: [][]string{},
			expectedErr:   true,
		},
		{
			name:   "push fails",
			branch: "feature",
			force:  true,
			remote: staticRemote("origin"),
			responses: map[string]execResponse{
				"push --force origin feature": {err: errors.New("rejected")},
			},
			expectedCalls: [][]string{
				{"push", "--force", "origin", "feature"},
			},
			expectedErr: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := fakeExecutor{
				records:   [][]string{},
				responses: testCase.responses,
			}
			p := publisher{
				executor: &e,
				remote:   testCase.remote,
				dryRun:   testCase.dryRun,
				logger:   logrus.WithField("test", testCase.name),
			}
			actualErr := p.PushToCentral(testCase.branch, testCase.force)
			if testCase.expectedErr && actualErr == nil {
				t.Errorf("%s: expected an error but got none", testCase.name)
			}
			if !testCase.expectedErr && actualErr != nil {
				t.Errorf("%s: expected no error but got one: %v", testCase.name, actualErr)
			}
			if diff := cmp.Diff(testCase.expectedCalls, e.records); diff != "" {
				t.Errorf("%s: got incorrect git calls: %s", testCase.name, diff)
			}
		})
	}
}
