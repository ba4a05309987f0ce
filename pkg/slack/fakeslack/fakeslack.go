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

package fakeslack

import (
	"k8s.io/release-cherrypicker/pkg/slack"
)

// FakeClient records messages instead of sending them.
type FakeClient struct {
	SentMessages []slack.Message
	// Err is returned by SendMessage when set, and the message is not recorded.
	Err error
}

func (fk *FakeClient) SendMessage(msg slack.Message) error {
	if fk.Err != nil {
		return fk.Err
	}
	fk.SentMessages = append(fk.SentMessages, msg)
	return nil
}
