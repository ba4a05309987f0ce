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

// Package secretutil implements utilities to operate on secret data.
package secretutil

import (
	"encoding/base64"
	"net/url"
	"strings"
	"sync"

	"go4.org/bytereplacer"
)

// Censorer knows how to replace sensitive data from input.
type Censorer interface {
	// Censor replaces every registered secret in input with asterisks of the
	// same length. It mutates input in place and never changes its size.
	Censor(input *[]byte)
}

// ReplacingCensorer censors a set of secrets that can be swapped out at any time.
type ReplacingCensorer struct {
	lock     sync.RWMutex
	replacer *bytereplacer.Replacer
	secrets  int
}

var _ Censorer = &ReplacingCensorer{}

// NewCensorer returns a censorer with no secrets registered.
func NewCensorer() *ReplacingCensorer {
	return &ReplacingCensorer{replacer: bytereplacer.New()}
}

func (c *ReplacingCensorer) Censor(input *[]byte) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	// Replacements have the same length as the originals, so Replace
	// rewrites input in place and the returned slice can be dropped.
	c.replacer.Replace(*input)
}

// Len returns the number of distinct strings being censored, encoded forms included.
func (c *ReplacingCensorer) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.secrets
}

// RefreshBytes replaces the set of censored secrets.
func (c *ReplacingCensorer) RefreshBytes(secrets ...[]byte) {
	asStrings := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		asStrings = append(asStrings, string(secret))
	}
	c.Refresh(asStrings...)
}

// Refresh replaces the set of censored secrets. Surrounding whitespace is
// ignored. Besides the plain value, its base64 and URL-escaped forms are
// censored too, as tokens end up in git remote URLs and basic-auth headers.
func (c *ReplacingCensorer) Refresh(secrets ...string) {
	seen := map[string]bool{}
	var replacements []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		replacements = append(replacements, s, strings.Repeat("*", len(s)))
	}
	for _, secret := range secrets {
		secret = strings.TrimSpace(secret)
		add(secret)
		if secret != "" {
			add(base64.StdEncoding.EncodeToString([]byte(secret)))
			add(url.QueryEscape(secret))
		}
	}
	replacer := bytereplacer.New(replacements...)
	c.lock.Lock()
	c.replacer = replacer
	c.secrets = len(seen)
	c.lock.Unlock()
}

// AdaptCensorer returns a func that censors a copy of its input.
func AdaptCensorer(censorer Censorer) func(input []byte) []byte {
	return func(input []byte) []byte {
		output := make([]byte, len(input))
		copy(output, input)
		censorer.Censor(&output)
		return output
	}
}
