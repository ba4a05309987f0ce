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

// Package slack posts messages to a Slack incoming webhook.
package slack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"k8s.io/release-cherrypicker/pkg/version"
)

const clientTimeout = 30 * time.Second

// Client sends messages to a single incoming webhook.
type Client struct {
	logger *logrus.Entry
	client *http.Client
	// webhook returns the webhook URL, which is a credential.
	webhook func() []byte
	dry     bool
}

// NewClient returns a client posting to the webhook URL returned by getWebhook.
func NewClient(getWebhook func() []byte) *Client {
	return newClient(getWebhook, false, http.DefaultTransport)
}

// NewDryRunClient returns a client that logs messages instead of posting them.
func NewDryRunClient(getWebhook func() []byte) *Client {
	return newClient(getWebhook, true, http.DefaultTransport)
}

func newClient(getWebhook func() []byte, dry bool, transport http.RoundTripper) *Client {
	return &Client{
		logger:  logrus.WithField("client", "slack"),
		client:  &http.Client{Transport: transport, Timeout: clientTimeout},
		webhook: getWebhook,
		dry:     dry,
	}
}

// SendMessage posts msg to the webhook. Anything but a 200 is an error.
func (c *Client) SendMessage(msg Message) error {
	if c.dry {
		c.logger.WithField("text", msg.Text).Info("Not sending Slack message in dry-run mode.")
		return nil
	}
	webhook := strings.TrimSpace(string(c.webhook()))
	if !strings.HasPrefix(webhook, "https://") && !strings.HasPrefix(webhook, "http://") {
		return errors.New("slack webhook URL is not configured")
	}
	marshalled, err := json.Marshal(msg.payload())
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, webhook, bytes.NewBuffer(marshalled))
	if err != nil {
		// The error embeds the URL, which must not be logged.
		return errors.New("failed to create HTTP request for the slack webhook")
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", version.UserAgent())
	response, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			// Drop the URL, it embeds the webhook secret.
			err = urlErr.Err
		}
		return fmt.Errorf("failed to POST message to Slack: %w", err)
	}
	defer response.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
	if response.StatusCode != http.StatusOK {
		if response.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("slack has rate limited us for the next %s seconds", response.Header.Get("Retry-After"))
		}
		return fmt.Errorf("sending message to Slack failed with status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}
	c.logger.Debug("Sent Slack message.")
	return nil
}
