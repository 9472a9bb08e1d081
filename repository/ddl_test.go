package repository

import (
	"testing"
)

// TestBuildCreateUser_FullClause tests statement assembly with every clause.
func TestBuildCreateUser_FullClause(t *testing.T) {
	stmt, err := BuildCreateUser("alice", "Secret1", "users", "temp", "100M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "CREATE USER ALICE IDENTIFIED BY Secret1 DEFAULT TABLESPACE USERS TEMPORARY TABLESPACE TEMP QUOTA 100M ON USERS"
	if stmt != want {
		t.Errorf("got %q, want %q", stmt, want)
	}
}

// TestBuildCreateUser_DefaultsTempTablespace tests the TEMP default.
func TestBuildCreateUser_DefaultsTempTablespace(t *testing.T) {
	stmt, err := BuildCreateUser("bob", "Pw1", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "CREATE USER BOB IDENTIFIED BY Pw1 TEMPORARY TABLESPACE TEMP"
	if stmt != want {
		t.Errorf("got %q, want %q", stmt, want)
	}
}

// TestBuildCreateUser_RejectsInjection tests that statement-breaking
// names never reach the assembled text.
func TestBuildCreateUser_RejectsInjection(t *testing.T) {
	if _, err := BuildCreateUser("x; DROP USER SYS", "Pw1", "", "", ""); err == nil {
		t.Error("expected error for malicious username")
	}
	if _, err := BuildCreateUser("alice", "p'w", "", "", ""); err == nil {
		t.Error("expected error for quoted password")
	}
	if _, err := BuildCreateUser("alice", "Pw1", "ts;--", "", ""); err == nil {
		t.Error("expected error for malicious tablespace")
	}
	if _, err := BuildCreateUser("alice", "Pw1", "users", "", "10M; GRANT DBA TO X"); err == nil {
		t.Error("expected error for malicious quota")
	}
}

func TestBuildCreateUser_QuotaRequiresTablespace(t *testing.T) {
	if _, err := BuildCreateUser("alice", "Pw1", "", "", "100M"); err == nil {
		t.Error("expected error for quota without default tablespace")
	}
}

func TestBuildAlterUser(t *testing.T) {
	stmt, err := BuildAlterUser("alice", "NewPw1", "", "", "", "limited")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ALTER USER ALICE IDENTIFIED BY NewPw1 PROFILE LIMITED"
	if stmt != want {
		t.Errorf("got %q, want %q", stmt, want)
	}

	if _, err := BuildAlterUser("alice", "", "", "", "", ""); err == nil {
		t.Error("expected error when no clause supplied")
	}
}

func TestBuildLockUnlockDrop(t *testing.T) {
	stmt, _ := BuildAccountLock("alice")
	if stmt != "ALTER USER ALICE ACCOUNT LOCK" {
		t.Errorf("lock: got %q", stmt)
	}
	stmt, _ = BuildAccountUnlock("alice")
	if stmt != "ALTER USER ALICE ACCOUNT UNLOCK" {
		t.Errorf("unlock: got %q", stmt)
	}
	stmt, _ = BuildDropUser("alice")
	if stmt != "DROP USER ALICE CASCADE" {
		t.Errorf("drop: got %q", stmt)
	}
}

func TestBuildRoleStatements(t *testing.T) {
	stmt, err := BuildCreateRole("app_reader", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt != "CREATE ROLE APP_READER" {
		t.Errorf("got %q", stmt)
	}

	stmt, err = BuildCreateRole("app_admin", "RolePw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt != "CREATE ROLE APP_ADMIN IDENTIFIED BY RolePw1" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildDropRole("app_reader")
	if stmt != "DROP ROLE APP_READER" {
		t.Errorf("got %q", stmt)
	}
}

func TestBuildProfileStatements(t *testing.T) {
	stmt, err := BuildCreateProfile("limited", "3", "UNLIMITED", "30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "CREATE PROFILE LIMITED LIMIT SESSIONS_PER_USER 3 CONNECT_TIME UNLIMITED IDLE_TIME 30"
	if stmt != want {
		t.Errorf("got %q, want %q", stmt, want)
	}

	if _, err := BuildCreateProfile("limited", "", "", ""); err == nil {
		t.Error("expected error when no limit supplied")
	}

	stmt, _ = BuildDropProfile("limited")
	if stmt != "DROP PROFILE LIMITED CASCADE" {
		t.Errorf("got %q", stmt)
	}
}

func TestBuildGrantStatements(t *testing.T) {
	stmt, err := BuildGrantSystem("create session", "alice", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt != "GRANT CREATE SESSION TO ALICE" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildGrantSystem("CREATE TABLE", "alice", true)
	if stmt != "GRANT CREATE TABLE TO ALICE WITH ADMIN OPTION" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildRevokeSystem("CREATE TABLE", "alice")
	if stmt != "REVOKE CREATE TABLE FROM ALICE" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildGrantRole("app_reader", "alice", false)
	if stmt != "GRANT APP_READER TO ALICE" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildGrantObject("select", "hr.employees", "alice", true)
	if stmt != "GRANT SELECT ON HR.EMPLOYEES TO ALICE WITH GRANT OPTION" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildRevokeObject("select", "hr.employees", "alice")
	if stmt != "REVOKE SELECT ON HR.EMPLOYEES FROM ALICE" {
		t.Errorf("got %q", stmt)
	}

	stmt, _ = BuildGrantColumn("update", "hr.employees", "salary", "alice")
	if stmt != "GRANT UPDATE (SALARY) ON HR.EMPLOYEES TO ALICE" {
		t.Errorf("got %q", stmt)
	}

	if _, err := BuildGrantSystem("DBA; DROP USER X", "alice", false); err == nil {
		t.Error("expected error for malicious privilege")
	}
}
