package utils

import (
	"testing"
)

// TestValidateIdentifier_Accepts tests that legal Oracle identifiers pass
// and come back uppercased.
func TestValidateIdentifier_Accepts(t *testing.T) {
	cases := map[string]string{
		"alice":      "ALICE",
		"SEC_ADMIN":  "SEC_ADMIN",
		"app$user1":  "APP$USER1",
		"T#X":        "T#X",
		"a234567890": "A234567890",
	}
	for input, want := range cases {
		got, err := ValidateIdentifier(input)
		if err != nil {
			t.Errorf("ValidateIdentifier(%q) unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ValidateIdentifier(%q) = %q, want %q", input, got, want)
		}
	}
}

// TestValidateIdentifier_Rejects tests that statement-breaking input is refused.
func TestValidateIdentifier_Rejects(t *testing.T) {
	cases := []string{
		"",
		"1abc",
		"_leading",
		"has space",
		"semi;colon",
		"x; DROP USER SYS",
		"quote'name",
		"dash-name",
		"waytoolongidentifiername_exceeding_thirty_chars",
	}
	for _, input := range cases {
		if _, err := ValidateIdentifier(input); err == nil {
			t.Errorf("ValidateIdentifier(%q) expected error, got none", input)
		}
	}
}

func TestValidateObjectName(t *testing.T) {
	got, err := ValidateObjectName("hr.employees")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "HR.EMPLOYEES" {
		t.Errorf("got %q, want HR.EMPLOYEES", got)
	}

	bad := []string{"", "hr.emp.extra", "hr.", ".emp", "hr.emp; --"}
	for _, input := range bad {
		if _, err := ValidateObjectName(input); err == nil {
			t.Errorf("ValidateObjectName(%q) expected error, got none", input)
		}
	}
}

func TestValidatePrivilege(t *testing.T) {
	got, err := ValidatePrivilege("create session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "CREATE SESSION" {
		t.Errorf("got %q, want CREATE SESSION", got)
	}

	if _, err := ValidatePrivilege("SELECT; DROP TABLE T"); err == nil {
		t.Error("expected error for privilege containing statement separator")
	}
	if _, err := ValidatePrivilege(""); err == nil {
		t.Error("expected error for empty privilege")
	}
}

func TestValidateQuota(t *testing.T) {
	good := map[string]string{
		"UNLIMITED": "UNLIMITED",
		"unlimited": "UNLIMITED",
		"100M":      "100M",
		"5G":        "5G",
		"512K":      "512K",
	}
	for input, want := range good {
		got, err := ValidateQuota(input)
		if err != nil {
			t.Errorf("ValidateQuota(%q) unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ValidateQuota(%q) = %q, want %q", input, got, want)
		}
	}

	bad := []string{"", "M", "-5M", "10X", "10M; DROP USER A", "abcM"}
	for _, input := range bad {
		if _, err := ValidateQuota(input); err == nil {
			t.Errorf("ValidateQuota(%q) expected error, got none", input)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	good := map[string]string{
		"UNLIMITED": "UNLIMITED",
		"default":   "DEFAULT",
		"10":        "10",
	}
	for input, want := range good {
		got, err := ValidateLimit(input)
		if err != nil {
			t.Errorf("ValidateLimit(%q) unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ValidateLimit(%q) = %q, want %q", input, got, want)
		}
	}

	bad := []string{"", "0", "-3", "ten", "10; COMMIT"}
	for _, input := range bad {
		if _, err := ValidateLimit(input); err == nil {
			t.Errorf("ValidateLimit(%q) expected error, got none", input)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  alice "); got != "ALICE" {
		t.Errorf("got %q, want ALICE", got)
	}
	if got := NormalizeUsername(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestEscapeSQL(t *testing.T) {
	if got := EscapeSQL("O'Brien"); got != "O''Brien" {
		t.Errorf("got %q, want O''Brien", got)
	}
}
