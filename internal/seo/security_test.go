// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
)

func TestSecurityTxtBuilderMinimal(t *testing.T) {
	expires := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	got := NewSecurityTxtBuilder(SecurityTxtConfig{
		Contact: []string{"mailto:security@joostry.example"},
		Expires: expires,
	}).Build()

	for _, want := range []string{
		"Contact: mailto:security@joostry.example\n",
		"Expires: 2027-03-01T00:00:00Z\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	for _, absent := range []string{"Canonical:", "Policy:", "Acknowledgments:"} {
		if strings.Contains(got, absent) {
			t.Errorf("unset field %q rendered in:\n%s", absent, got)
		}
	}
}

func TestSecurityTxtBuilderFull(t *testing.T) {
	got := NewSecurityTxtBuilder(SecurityTxtConfig{
		Contact: []string{
			"mailto:security@joostry.example",
			"https://joostry.example/security",
		},
		Expires:            time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		Canonical:          "https://joostry.example/.well-known/security.txt",
		Policy:             "https://joostry.example/security-policy",
		PreferredLanguages: "ar, en",
		Acknowledgments:    "https://joostry.example/thanks",
	}).Build()

	for _, want := range []string{
		"Contact: mailto:security@joostry.example",
		"Contact: https://joostry.example/security",
		"Canonical: https://joostry.example/.well-known/security.txt",
		"Policy: https://joostry.example/security-policy",
		"Preferred-Languages: ar, en",
		"Acknowledgments: https://joostry.example/thanks",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestSecurityTxtBuilderSkipsEmptyContacts(t *testing.T) {
	got := NewSecurityTxtBuilder(SecurityTxtConfig{
		Contact: []string{"", "mailto:security@joostry.example"},
		Expires: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
	}).Build()

	if strings.Count(got, "Contact:") != 1 {
		t.Errorf("empty contact entries should be dropped:\n%s", got)
	}
}

func TestSecurityTxtBuilderDefaultExpiry(t *testing.T) {
	got := NewSecurityTxtBuilder(SecurityTxtConfig{
		Contact: []string{"mailto:security@joostry.example"},
	}).Build()

	if !strings.Contains(got, "Expires: ") {
		t.Fatalf("Expires must always render:\n%s", got)
	}
	// Roughly a year out.
	yearAhead := time.Now().AddDate(1, 0, 0).Format("2006")
	if !strings.Contains(got, "Expires: "+yearAhead) {
		t.Errorf("default expiry should land a year ahead:\n%s", got)
	}
}

func TestGenerateSecurityTxt(t *testing.T) {
	got := GenerateSecurityTxt("mailto:security@joostry.example", time.Date(2027, 6, 15, 12, 0, 0, 0, time.UTC))

	if !strings.Contains(got, "Contact: mailto:security@joostry.example") ||
		!strings.Contains(got, "Expires: 2027-06-15T12:00:00Z") {
		t.Errorf("unexpected output:\n%s", got)
	}
}
