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

package slack

import (
	"fmt"
	"strings"
)

// Message is a notification rendered both as plain text, for clients that
// cannot show blocks, and as a single mrkdwn section.
type Message struct {
	Text string
}

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type string     `json:"type"`
	Text textObject `json:"text"`
}

type payload struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

func (m Message) payload() payload {
	return payload{
		Text: m.Text,
		Blocks: []block{{
			Type: "section",
			Text: textObject{Type: "mrkdwn", Text: m.Text},
		}},
	}
}

// EscapeMessage escapes special characters in Slack messages.
func EscapeMessage(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// Mention renders a plain-text handle.
func Mention(handle string) string {
	return "@" + EscapeMessage(handle)
}

// UserMention notifies a Slack member by ID.
func UserMention(id string) string {
	return fmt.Sprintf("<@%s>", id)
}

// GroupMention notifies every member of a user group by ID.
func GroupMention(id string) string {
	return fmt.Sprintf("<!subteam^%s>", id)
}

// Link renders url with text as its label.
func Link(url, text string) string {
	return fmt.Sprintf("<%s|%s>", url, EscapeMessage(text))
}
