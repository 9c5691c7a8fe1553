// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// adminPaths are kept out of crawler indexes on every deployment.
var adminPaths = []string{"/admin", "/login", "/logout"}

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // base URL for the Sitemap line
	DisallowAll   bool     // block everything, used while maintenance mode is on
	ExtraRules    string   // verbatim extra directives
	DisallowPaths []string // disallowed paths beyond the admin surface
}

// RobotsBuilder renders a RobotsConfig into robots.txt content.
type RobotsBuilder struct {
	config RobotsConfig
}

// NewRobotsBuilder creates a builder for the given config.
func NewRobotsBuilder(config RobotsConfig) *RobotsBuilder {
	return &RobotsBuilder{config: config}
}

// Build renders the robots.txt body.
func (b *RobotsBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if b.config.DisallowAll {
		sb.WriteString("Disallow: /\n")
	} else {
		for _, path := range adminPaths {
			sb.WriteString("Disallow: " + path + "\n")
		}
		for _, path := range b.config.DisallowPaths {
			sb.WriteString("Disallow: " + path + "\n")
		}
		sb.WriteString("Allow: /\n")
	}

	if b.config.ExtraRules != "" {
		sb.WriteString("\n")
		sb.WriteString(b.config.ExtraRules)
		if !strings.HasSuffix(b.config.ExtraRules, "\n") {
			sb.WriteString("\n")
		}
	}

	if b.config.SiteURL != "" && !b.config.DisallowAll {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(b.config.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}

	return sb.String()
}

// GenerateRobots renders robots.txt for the storefront. disallowAll is
// driven by maintenance mode.
func GenerateRobots(siteURL string, disallowAll bool, extraRules string) string {
	return NewRobotsBuilder(RobotsConfig{
		SiteURL:     siteURL,
		DisallowAll: disallowAll,
		ExtraRules:  extraRules,
	}).Build()
}
