// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides password hashing and verification utilities
// using the argon2id algorithm for secure credential storage.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters (OWASP recommended second choice: m=19456, t=2, p=1)
const (
	argon2Time    = 2
	argon2Memory  = 19 * 1024 // 19 MB, fits on small VMs
	argon2Threads = 1
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// hashParams are the cost parameters decoded from an encoded hash.
type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// parseParams splits an encoded hash and extracts its cost parameters.
// The encoded form is $argon2id$v=19$m=...,t=...,p=...$salt$hash.
func parseParams(encodedHash string) ([]string, hashParams, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, hashParams{}, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return nil, hashParams{}, fmt.Errorf("unsupported hash type: %s", parts[1])
	}

	var p hashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, hashParams{}, fmt.Errorf("parsing parameters: %w", err)
	}
	return parts, p, nil
}

// HashPassword creates an argon2id hash of the password using the
// current default cost parameters.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// CheckPassword verifies a password against an encoded argon2id hash.
// Cost parameters are taken from the hash itself, so hashes created
// with older defaults remain verifiable. Comparison is constant-time.
func CheckPassword(password, encodedHash string) (bool, error) {
	parts, p, err := parseParams(encodedHash)
	if err != nil {
		return false, err
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing version: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding hash: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// NeedsRehash reports whether an encoded hash was created with cost
// parameters different from the current defaults. Callers should
// re-hash the password after a successful verification when this
// returns true.
func NeedsRehash(encodedHash string) bool {
	_, p, err := parseParams(encodedHash)
	if err != nil {
		return true
	}
	return p.memory != argon2Memory || p.time != argon2Time || p.threads != argon2Threads
}
