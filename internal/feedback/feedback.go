// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// Package feedback builds the feature request message users send to the
// maintainers.
package feedback

import (
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
)

const (
	featureSubject = "Feature Request - FRC Scout"
	featureBody    = "Brief summary:\n\n\nExtended description (optional): \n"
)

// clipboardWriteAll is replaced in tests; headless CI has no clipboard.
var clipboardWriteAll = clipboard.WriteAll

// Message is a prefilled email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// FeatureRequest returns the feature request template addressed to
// recipient, which may be empty.
func FeatureRequest(recipient string) Message {
	return Message{
		To:      strings.TrimSpace(recipient),
		Subject: featureSubject,
		Body:    featureBody,
	}
}

// MailtoURL renders the message as a mailto: link for the system mail client.
func (m Message) MailtoURL() string {
	q := url.Values{}
	q.Set("subject", m.Subject)
	q.Set("body", m.Body)
	u := url.URL{
		Scheme: "mailto",
		Opaque: m.To,
		// Mail clients expect %20 rather than '+' for spaces.
		RawQuery: strings.ReplaceAll(q.Encode(), "+", "%20"),
	}
	return u.String()
}

// Text is the message as plain text, suitable for pasting.
func (m Message) Text() string {
	var b strings.Builder
	if m.To != "" {
		b.WriteString("To: " + m.To + "\n")
	}
	b.WriteString("Subject: " + m.Subject + "\n\n")
	b.WriteString(m.Body)
	return b.String()
}

// CopyToClipboard puts the plain text message on the system clipboard.
func (m Message) CopyToClipboard() error {
	return clipboardWriteAll(m.Text())
}
