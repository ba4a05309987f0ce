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

package version

import "testing"

func TestVersionTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantV   int64
		wantErr bool
	}{
		{
			name:    "base case",
			version: "v20200102-a1b2c3",
			wantV:   1577923200,
		},
		{
			name:    "invalid version",
			version: "v20200102a-a1b2c3",
			wantErr: true,
		},
		{
			name:    "unset version",
			version: "0",
			wantErr: true,
		},
	}
	orig := Version
	defer func() { Version = orig }()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			Version = tc.version
			got, err := VersionTimestamp()
			if got != tc.wantV {
				t.Fatalf("version mismatch, want: %d, got: %d", tc.wantV, got)
			}
			if (err != nil) != tc.wantErr {
				t.Fatalf("error mismatch, want error: %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	origName, origVersion := Name, Version
	defer func() { Name, Version = origName, origVersion }()
	Name, Version = "release-cherrypicker", "v20260101-deadbeef"
	if got, want := UserAgent(), "release-cherrypicker/v20260101-deadbeef"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
