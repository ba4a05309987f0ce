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

// Package version holds variables that identify the binary's name and version.
// Both are set at link time with -ldflags "-X".
package version

import (
	"fmt"
	"regexp"
	"time"
)

var (
	// Name is the colloquial identifier for the compiled component
	Name = "release-cherrypicker"
	// Version is a concatenation of the build date and commit SHA
	Version = "0"

	// "v${build_date}-${git_commit}"
	reVersion = regexp.MustCompile(`^v(\d{8})-.*`)
)

// UserAgent exposes the component's name and version for the user-agent header
func UserAgent() string {
	return Name + "/" + Version
}

// VersionTimestamp returns the unix timestamp of the build date encoded in Version.
func VersionTimestamp() (int64, error) {
	m := reVersion.FindStringSubmatch(Version)
	if len(m) < 2 {
		return 0, fmt.Errorf("version expected to be in form 'v${build_date}-${git_commit}': %q", Version)
	}
	t, err := time.Parse("20060102", m[1])
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
