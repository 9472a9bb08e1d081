package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier allow-listing for dynamic DDL assembly. Oracle DDL verbs
// (CREATE USER, GRANT, ALTER PROFILE, ...) do not accept bind variables
// for identifiers, so every value interpolated into a statement must
// pass one of these checks first.

const maxIdentifierLen = 30

// ValidateIdentifier checks a single unquoted Oracle identifier:
// a leading letter followed by letters, digits, _, $ or #, at most 30
// characters. Returns the uppercase form.
func ValidateIdentifier(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("identifier must not be empty")
	}
	if len(name) > maxIdentifierLen {
		return "", fmt.Errorf("identifier %q exceeds %d characters", name, maxIdentifierLen)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_' || r == '$' || r == '#'):
		default:
			return "", fmt.Errorf("identifier %q contains invalid character %q", name, r)
		}
	}
	return strings.ToUpper(name), nil
}

// ValidateObjectName checks an optionally schema-qualified object name
// (OWNER.TABLE). Each dotted part must be a valid identifier.
func ValidateObjectName(name string) (string, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("object name %q has too many qualifiers", name)
	}
	for i, part := range parts {
		valid, err := ValidateIdentifier(part)
		if err != nil {
			return "", err
		}
		parts[i] = valid
	}
	return strings.Join(parts, "."), nil
}

// ValidatePrivilege checks a system or object privilege name such as
// "CREATE TABLE" or "SELECT": uppercase words separated by single
// spaces, letters only.
func ValidatePrivilege(priv string) (string, error) {
	priv = strings.ToUpper(strings.TrimSpace(priv))
	if priv == "" {
		return "", fmt.Errorf("privilege must not be empty")
	}
	if len(priv) > 40 {
		return "", fmt.Errorf("privilege %q is too long", priv)
	}
	for _, word := range strings.Split(priv, " ") {
		if word == "" {
			return "", fmt.Errorf("privilege %q has malformed spacing", priv)
		}
		for _, r := range word {
			if r < 'A' || r > 'Z' {
				return "", fmt.Errorf("privilege %q contains invalid character %q", priv, r)
			}
		}
	}
	return priv, nil
}

// ValidatePassword checks a password destined for an IDENTIFIED BY
// clause. The charset is restricted to the identifier alphabet so the
// value can never terminate or extend the statement.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if len(password) > maxIdentifierLen {
		return fmt.Errorf("password exceeds %d characters", maxIdentifierLen)
	}
	for i, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_' || r == '$' || r == '#'):
		default:
			return fmt.Errorf("password contains invalid character %q", r)
		}
	}
	return nil
}

// ValidateLimit checks a profile resource limit: UNLIMITED, DEFAULT, or
// a positive integer bound. Returns the normalized form.
func ValidateLimit(limit string) (string, error) {
	limit = strings.ToUpper(strings.TrimSpace(limit))
	if limit == "UNLIMITED" || limit == "DEFAULT" {
		return limit, nil
	}
	n, err := strconv.Atoi(limit)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("limit %q must be UNLIMITED, DEFAULT or a positive integer", limit)
	}
	return strconv.Itoa(n), nil
}

// ValidateQuota checks a tablespace quota: UNLIMITED or a size such as
// 100M / 2G. Returns the normalized form.
func ValidateQuota(quota string) (string, error) {
	quota = strings.ToUpper(strings.TrimSpace(quota))
	if quota == "UNLIMITED" {
		return quota, nil
	}
	if len(quota) < 2 {
		return "", fmt.Errorf("quota %q must be UNLIMITED or a size ending in K, M or G", quota)
	}
	unit := quota[len(quota)-1:]
	if unit != "K" && unit != "M" && unit != "G" {
		return "", fmt.Errorf("quota %q must be UNLIMITED or a size ending in K, M or G", quota)
	}
	n, err := strconv.Atoi(quota[:len(quota)-1])
	if err != nil || n <= 0 {
		return "", fmt.Errorf("quota %q must have a positive numeric size", quota)
	}
	return strconv.Itoa(n) + unit, nil
}

// EscapeSQL escapes single quotes in SQL string literals. Oracle uses
// doubled single quotes for escaping: O'Brien -> O''Brien.
func EscapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// NormalizeUsername trims and uppercases an account or role name for
// catalog lookups. The catalog stores unquoted names uppercase.
func NormalizeUsername(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
