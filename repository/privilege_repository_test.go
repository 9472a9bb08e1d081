package repository

import (
	"fmt"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"oraconsole/config"
)

func newMockedPrivilegeRepo(t *testing.T) (PrivilegeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPrivilegeRepositoryWithCatalog(NewCatalogWithDB(db, "mysql")), mock
}

// TestHasPrivilege_DirectGrant tests the short-circuit on a direct grant.
func TestHasPrivilege_DirectGrant(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM DBA_SYS_PRIVS\\s+WHERE GRANTEE = \\?").
		WithArgs("ALICE", "CREATE USER").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

	if !repo.HasPrivilege("alice", "CREATE USER") {
		t.Error("expected privilege to be held directly")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestHasPrivilege_ThroughRole tests the fallback to role-held grants.
func TestHasPrivilege_ThroughRole(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM DBA_SYS_PRIVS\\s+WHERE GRANTEE = \\?").
		WithArgs("ALICE", "CREATE USER").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM DBA_SYS_PRIVS\\s+WHERE GRANTEE IN \\(\\s+SELECT GRANTED_ROLE").
		WithArgs("ALICE", "CREATE USER").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

	if !repo.HasPrivilege("alice", "CREATE USER") {
		t.Error("expected privilege to be held through a role")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestHasPrivilege_Absent tests that no grant anywhere yields false.
func TestHasPrivilege_Absent(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))

	if repo.HasPrivilege("alice", "DROP USER") {
		t.Error("expected privilege to be absent")
	}
}

// TestHasPrivilege_QueryFailure tests that catalog errors count as absence.
func TestHasPrivilege_QueryFailure(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(fmt.Errorf("ORA-00942: table or view does not exist"))

	if repo.HasPrivilege("alice", "CREATE USER") {
		t.Error("expected query failure to report absence")
	}
}

// TestGetAll_CatalogFailure tests the empty-list degradation.
func TestGetAll_CatalogFailure(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT PRIVILEGE, GRANTEE, ADMIN_OPTION").
		WillReturnError(fmt.Errorf("ORA-01031: insufficient privileges"))

	grants := repo.GetAll()
	if grants == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(grants) != 0 {
		t.Errorf("expected empty list, got %d grants", len(grants))
	}
}

// TestGetAll_UnionsSystemAndObjectGrants tests both catalog views feed the list.
func TestGetAll_UnionsSystemAndObjectGrants(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT PRIVILEGE, GRANTEE, ADMIN_OPTION").
		WillReturnRows(sqlmock.NewRows([]string{"PRIVILEGE", "GRANTEE", "ADMIN_OPTION"}).
			AddRow("CREATE SESSION", "ALICE", "NO").
			AddRow("CREATE USER", "SEC_ADMIN", "YES"))
	mock.ExpectQuery("SELECT PRIVILEGE, GRANTEE, GRANTOR, TABLE_NAME, GRANTABLE").
		WillReturnRows(sqlmock.NewRows([]string{"PRIVILEGE", "GRANTEE", "GRANTOR", "TABLE_NAME", "GRANTABLE"}).
			AddRow("SELECT", "ALICE", "HR", "EMPLOYEES", "NO"))

	grants := repo.GetAll()
	if len(grants) != 3 {
		t.Fatalf("expected 3 grants, got %d", len(grants))
	}
	if !grants[1].AdminOption {
		t.Error("expected admin option on second grant")
	}
	if grants[2].Kind != "OBJECT" || grants[2].ObjectName != "EMPLOYEES" {
		t.Errorf("unexpected object grant: %+v", grants[2])
	}
}

// TestGrantAndRevoke_IssueValidatedDDL tests the statement text reaching
// the catalog connection.
func TestGrantAndRevoke_IssueValidatedDDL(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("GRANT CREATE SESSION TO ALICE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.GrantSystem("create session", "alice", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("REVOKE CREATE SESSION FROM ALICE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.RevokeSystem("create session", "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("GRANT APP_READER TO ALICE WITH ADMIN OPTION")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.GrantRole("app_reader", "alice", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestGrant_RejectsMaliciousInput tests that invalid identifiers never
// reach the connection.
func TestGrant_RejectsMaliciousInput(t *testing.T) {
	repo, mock := newMockedPrivilegeRepo(t)

	if err := repo.GrantSystem("CREATE SESSION", "x; DROP USER SYS", false); err == nil {
		t.Error("expected error for malicious grantee")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no statement should have been executed: %v", err)
	}
}

// TestGetAvailableTablespaces tests the configured exclusion list.
func TestGetAvailableTablespaces(t *testing.T) {
	prev := config.Cfg.SystemTablespaces
	config.Cfg.SystemTablespaces = []string{"SYSTEM", "SYSAUX", "TEMP", "UNDOTBS1"}
	t.Cleanup(func() { config.Cfg.SystemTablespaces = prev })

	repo, mock := newMockedPrivilegeRepo(t)

	mock.ExpectQuery("SELECT TABLESPACE_NAME\\s+FROM DBA_TABLESPACES\\s+WHERE TABLESPACE_NAME NOT IN \\('SYSTEM', 'SYSAUX', 'TEMP', 'UNDOTBS1'\\)").
		WillReturnRows(sqlmock.NewRows([]string{"TABLESPACE_NAME"}).
			AddRow("USERS").
			AddRow("APPDATA"))

	tablespaces := repo.GetAvailableTablespaces()
	if len(tablespaces) != 2 || tablespaces[0] != "USERS" {
		t.Errorf("unexpected tablespaces: %v", tablespaces)
	}
}
