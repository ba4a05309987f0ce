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
	"net/url"

	"k8s.io/release-cherrypicker/pkg/version"
)

// MetricsOptions holds options for pushing metrics.
type MetricsOptions struct {
	PushGateway string
	Job         string
}

// AddFlags injects metrics options into the given FlagSet.
func (o *MetricsOptions) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.PushGateway, "pushgateway-endpoint", "", "Prometheus Pushgateway to push run metrics to, optional.")
	fs.StringVar(&o.Job, "pushgateway-job", version.Name, "Job name to push metrics under.")
}

// Validate validates metrics options.
func (o *MetricsOptions) Validate(bool) error {
	if o.PushGateway == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(o.PushGateway); err != nil {
		return fmt.Errorf("invalid --pushgateway-endpoint URI: %q", o.PushGateway)
	}
	if o.Job == "" {
		return errors.New("--pushgateway-job is required with --pushgateway-endpoint")
	}
	return nil
}

// Enabled reports whether metrics should be pushed.
func (o *MetricsOptions) Enabled() bool {
	return o.PushGateway != ""
}
