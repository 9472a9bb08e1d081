package repository

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"oraconsole/config"
)

func accountColumnsList() []string {
	return []string{"USERNAME", "ACCOUNT_STATUS", "LOCK_DATE", "CREATED",
		"DEFAULT_TABLESPACE", "TEMPORARY_TABLESPACE", "PROFILE"}
}

func newMockedUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepositoryWithCatalog(NewCatalogWithDB(db, "mysql")), mock
}

// TestGetAll_ExcludesSystemAccounts tests the configured filter reaching
// the catalog query.
func TestGetAll_ExcludesSystemAccounts(t *testing.T) {
	prev := config.Cfg.SystemAccounts
	config.Cfg.SystemAccounts = []string{"SYS", "SYSTEM", "SYSAUX", "XS$NULL"}
	t.Cleanup(func() { config.Cfg.SystemAccounts = prev })

	repo, mock := newMockedUserRepo(t)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM DBA_USERS\\s+WHERE USERNAME NOT IN \\('SYS', 'SYSTEM', 'SYSAUX', 'XS\\$NULL'\\)\\s+AND USERNAME NOT LIKE 'C##%'").
		WillReturnRows(sqlmock.NewRows(accountColumnsList()).
			AddRow("ALICE", "OPEN", nil, created, "USERS", "TEMP", "DEFAULT"))

	accounts, err := repo.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(accounts))
	}
	acc := accounts[0]
	if acc.Username != "ALICE" || acc.AccountStatus != "OPEN" {
		t.Errorf("unexpected account: %+v", acc)
	}
	if acc.LockDate != nil {
		t.Error("expected nil lock date")
	}
	if acc.Created == nil || !acc.Created.Equal(created) {
		t.Errorf("unexpected created timestamp: %v", acc.Created)
	}
}

// TestGetByName_FallsBackToSessionIdentity tests the degraded path for
// connections that cannot read DBA_USERS.
func TestGetByName_FallsBackToSessionIdentity(t *testing.T) {
	repo, mock := newMockedUserRepo(t)

	mock.ExpectQuery("FROM DBA_USERS\\s+WHERE USERNAME = \\?").
		WithArgs("ALICE").
		WillReturnError(fmt.Errorf("ORA-00942: table or view does not exist"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT USER FROM DUAL")).
		WillReturnRows(sqlmock.NewRows([]string{"USER"}).AddRow("ALICE"))

	account, err := repo.GetByName("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account == nil {
		t.Fatal("expected synthesized account record")
	}
	if account.Username != "ALICE" || account.AccountStatus != "OPEN" {
		t.Errorf("unexpected synthesized record: %+v", account)
	}
}

// TestGetByName_FallbackRejectsOtherNames tests that the session identity
// only resolves its own account.
func TestGetByName_FallbackRejectsOtherNames(t *testing.T) {
	repo, mock := newMockedUserRepo(t)

	mock.ExpectQuery("FROM DBA_USERS\\s+WHERE USERNAME = \\?").
		WithArgs("BOB").
		WillReturnRows(sqlmock.NewRows(accountColumnsList()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT USER FROM DUAL")).
		WillReturnRows(sqlmock.NewRows([]string{"USER"}).AddRow("ALICE"))

	account, err := repo.GetByName("bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account != nil {
		t.Errorf("expected nil account for mismatched identity, got %+v", account)
	}
}

// TestGetQuota_NoRowMeansZero tests the 0M default for accounts without
// a quota row.
func TestGetQuota_NoRowMeansZero(t *testing.T) {
	repo, mock := newMockedUserRepo(t)

	mock.ExpectQuery("FROM DBA_TS_QUOTAS").
		WithArgs("ALICE", "USERS").
		WillReturnRows(sqlmock.NewRows([]string{"QUOTA"}))

	quota, err := repo.GetQuota("alice", "USERS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quota != "0M" {
		t.Errorf("got %q, want 0M", quota)
	}
}

// TestGetPrivileges_MergesDirectAndRoleHeld tests the two-source merge.
func TestGetPrivileges_MergesDirectAndRoleHeld(t *testing.T) {
	repo, mock := newMockedUserRepo(t)

	mock.ExpectQuery("SELECT PRIVILEGE, GRANTEE, ADMIN_OPTION\\s+FROM DBA_SYS_PRIVS").
		WithArgs("ALICE").
		WillReturnRows(sqlmock.NewRows([]string{"PRIVILEGE", "GRANTEE", "ADMIN_OPTION"}).
			AddRow("CREATE SESSION", "ALICE", "NO"))
	mock.ExpectQuery("INNER JOIN DBA_ROLE_PRIVS").
		WithArgs("ALICE").
		WillReturnRows(sqlmock.NewRows([]string{"PRIVILEGE", "ADMIN_OPTION", "GRANTED_ROLE"}).
			AddRow("CREATE TABLE", "NO", "APP_DEV"))

	grants, err := repo.GetPrivileges("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(grants))
	}
	if grants[0].Kind != "DIRECT" {
		t.Errorf("expected direct grant first, got %+v", grants[0])
	}
	if grants[1].Kind != "ROLE" || grants[1].RoleName != "APP_DEV" {
		t.Errorf("unexpected role grant: %+v", grants[1])
	}
}

// TestCreate_GrantsCreateSession tests that account creation is followed
// by the connect grant.
func TestCreate_GrantsCreateSession(t *testing.T) {
	repo, mock := newMockedUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE USER ALICE IDENTIFIED BY Secret1 DEFAULT TABLESPACE USERS TEMPORARY TABLESPACE TEMP")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("GRANT CREATE SESSION TO ALICE")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Create("alice", "Secret1", "users", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
