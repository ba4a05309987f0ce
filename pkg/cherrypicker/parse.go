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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"k8s.io/release-cherrypicker/pkg/github"
)

// DefaultBranchPattern matches release branches such as r1.0 or r2.3.0rc1.
// The character after the r must be a digit, so labels like rc-2.0, r-next
// or run-tests are never treated as branches and do not reach the upstream
// existence check. Repositories with other release names set branchPattern
// in the config.
const DefaultBranchPattern = `r[0-9][0-9A-Za-z._-]*`

var (
	requestIDRe     = regexp.MustCompile(`#(\d+)\)`)
	defaultBranchRe = anchor(DefaultBranchPattern)
)

// anchor compiles pattern so that it has to match a whole label.
func anchor(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}

// ExtractRequestID returns the pull request number referenced in a commit
// subject as "#<digits>)". GitHub appends "(#N)" to squash-merge subjects, so
// when several references exist the last one wins.
func ExtractRequestID(subject string) (int, bool) {
	matches := requestIDRe.FindAllStringSubmatch(subject, -1)
	if len(matches) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DeriveTargetBranches returns the comma-separated labels matching pattern,
// each once, in the order they first appear. A nil pattern means the default
// release branch pattern.
func DeriveTargetBranches(labelCSV string, pattern *regexp.Regexp) []string {
	if pattern == nil {
		pattern = defaultBranchRe
	}
	seen := sets.NewString()
	var branches []string
	for _, token := range strings.Split(labelCSV, ",") {
		token = strings.TrimSpace(token)
		if token == "" || seen.Has(token) || !pattern.MatchString(token) {
			continue
		}
		seen.Insert(token)
		branches = append(branches, token)
	}
	return branches
}

// LabelCSV joins label names with commas.
func LabelCSV(labels []github.Label) string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.Name)
	}
	return strings.Join(names, ",")
}

// WorkingBranch names the branch a cherry-pick of pull request id onto target is prepared on.
func WorkingBranch(id int, target string) string {
	return fmt.Sprintf("cherry-pick-%d-%s", id, target)
}

// AuthorHandle derives a chat handle from a commit author email: its local
// part, without the numeric prefix GitHub puts on noreply addresses.
func AuthorHandle(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if strings.EqualFold(domain, "users.noreply.github.com") {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[plus+1:]
		}
	}
	return local
}
