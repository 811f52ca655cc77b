// Package validation provides input validation utilities executed at the
// API boundary, before any service call.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	evmWalletRe     = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	stellarWalletRe = regexp.MustCompile(`^G[A-Z2-7]{55}$`)
	usernameRe      = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	slugRe          = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// ValidateWalletAddress accepts EVM (0x + 40 hex) and Stellar (G + 55
// base32) address formats. Signature verification happens elsewhere.
func ValidateWalletAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("wallet address is required")
	}
	if !evmWalletRe.MatchString(addr) && !stellarWalletRe.MatchString(addr) {
		return fmt.Errorf("wallet address format is invalid")
	}
	return nil
}

// ValidateUsername checks length and the allowed character set.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, underscores and hyphens")
	}
	return nil
}

// ValidateEmail performs a shape check; deliverability is not verified.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("email format is invalid")
	}
	return nil
}

// ValidateScore checks a review score is within the 1-5 range.
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("score must be between 1 and 5")
	}
	return nil
}

// ValidateCurrency checks a currency code is a 3-8 letter uppercase symbol.
func ValidateCurrency(currency string) error {
	if len(currency) < 3 || len(currency) > 8 {
		return fmt.Errorf("currency must be 3 to 8 characters")
	}
	if currency != strings.ToUpper(currency) {
		return fmt.Errorf("currency must be uppercase")
	}
	return nil
}

// ValidateSlug checks a URL slug: lowercase alphanumerics separated by
// single hyphens.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(slug) > 80 {
		return fmt.Errorf("slug must not exceed 80 characters")
	}
	if !slugRe.MatchString(slug) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and hyphens")
	}
	return nil
}
