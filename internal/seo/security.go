// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxtConfig describes a security.txt file (RFC 9116). Contact
// and Expires are required by the RFC; the rest is optional.
type SecurityTxtConfig struct {
	// Contact entries: mailto:, https:, or tel: URIs for reporting
	// vulnerabilities. At least one is expected.
	Contact []string

	// Expires marks when the file goes stale. Zero means one year
	// from generation time.
	Expires time.Time

	// Canonical is the URL this file is served from.
	Canonical string

	// Policy links to the disclosure policy.
	Policy string

	// PreferredLanguages lists languages the security contact reads,
	// e.g. "ar, en".
	PreferredLanguages string

	// Acknowledgments links to a researcher credits page.
	Acknowledgments string
}

// SecurityTxtBuilder renders a SecurityTxtConfig into file content.
type SecurityTxtBuilder struct {
	config SecurityTxtConfig
}

// NewSecurityTxtBuilder creates a builder for the given config.
func NewSecurityTxtBuilder(config SecurityTxtConfig) *SecurityTxtBuilder {
	return &SecurityTxtBuilder{config: config}
}

// Build renders the security.txt body.
func (b *SecurityTxtBuilder) Build() string {
	var sb strings.Builder

	for _, contact := range b.config.Contact {
		writeField(&sb, "Contact", contact)
	}

	expires := b.config.Expires
	if expires.IsZero() {
		expires = time.Now().AddDate(1, 0, 0)
	}
	writeField(&sb, "Expires", expires.Format(time.RFC3339))

	writeField(&sb, "Canonical", b.config.Canonical)
	writeField(&sb, "Policy", b.config.Policy)
	writeField(&sb, "Preferred-Languages", b.config.PreferredLanguages)
	writeField(&sb, "Acknowledgments", b.config.Acknowledgments)

	return sb.String()
}

func writeField(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

// GenerateSecurityTxt renders a minimal security.txt with a single
// contact.
func GenerateSecurityTxt(contact string, expires time.Time) string {
	return NewSecurityTxtBuilder(SecurityTxtConfig{
		Contact: []string{contact},
		Expires: expires,
	}).Build()
}
