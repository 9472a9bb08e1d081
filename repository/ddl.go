package repository

import (
	"fmt"
	"strings"

	"oraconsole/utils"
)

// DDL builders for the catalog mutations. Oracle does not accept bind
// variables inside DDL, so each builder validates every interpolated
// value against the identifier allow-list before assembling the
// statement text.

// BuildCreateUser assembles the CREATE USER statement. The temporary
// tablespace defaults to TEMP and the optional quota applies to the
// default tablespace.
func BuildCreateUser(username, password, defaultTablespace, temporaryTablespace, quota string) (string, error) {
	user, err := utils.ValidateIdentifier(username)
	if err != nil {
		return "", err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE USER %s IDENTIFIED BY %s", user, password)

	if defaultTablespace != "" {
		ts, err := utils.ValidateIdentifier(defaultTablespace)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " DEFAULT TABLESPACE %s", ts)
	}
	if temporaryTablespace != "" {
		ts, err := utils.ValidateIdentifier(temporaryTablespace)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " TEMPORARY TABLESPACE %s", ts)
	} else {
		b.WriteString(" TEMPORARY TABLESPACE TEMP")
	}
	if quota != "" {
		if defaultTablespace == "" {
			return "", fmt.Errorf("quota requires a default tablespace")
		}
		q, err := utils.ValidateQuota(quota)
		if err != nil {
			return "", err
		}
		ts, _ := utils.ValidateIdentifier(defaultTablespace)
		fmt.Fprintf(&b, " QUOTA %s ON %s", q, ts)
	}

	return b.String(), nil
}

// BuildAlterUser assembles the ALTER USER statement from the optional
// clauses. At least one clause must be present.
func BuildAlterUser(username, password, defaultTablespace, temporaryTablespace, quota, profile string) (string, error) {
	user, err := utils.ValidateIdentifier(username)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ALTER USER %s", user)
	clauses := 0

	if password != "" {
		if err := utils.ValidatePassword(password); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " IDENTIFIED BY %s", password)
		clauses++
	}
	if defaultTablespace != "" {
		ts, err := utils.ValidateIdentifier(defaultTablespace)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " DEFAULT TABLESPACE %s", ts)
		clauses++
	}
	if temporaryTablespace != "" {
		ts, err := utils.ValidateIdentifier(temporaryTablespace)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " TEMPORARY TABLESPACE %s", ts)
		clauses++
	}
	if quota != "" {
		if defaultTablespace == "" {
			return "", fmt.Errorf("quota requires a default tablespace")
		}
		q, err := utils.ValidateQuota(quota)
		if err != nil {
			return "", err
		}
		ts, _ := utils.ValidateIdentifier(defaultTablespace)
		fmt.Fprintf(&b, " QUOTA %s ON %s", q, ts)
		clauses++
	}
	if profile != "" {
		p, err := utils.ValidateIdentifier(profile)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " PROFILE %s", p)
		clauses++
	}

	if clauses == 0 {
		return "", fmt.Errorf("alter user requires at least one clause")
	}
	return b.String(), nil
}

// BuildAccountLock assembles the ALTER USER ... ACCOUNT LOCK statement.
func BuildAccountLock(username string) (string, error) {
	user, err := utils.ValidateIdentifier(username)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER USER %s ACCOUNT LOCK", user), nil
}

// BuildAccountUnlock assembles the ALTER USER ... ACCOUNT UNLOCK statement.
func BuildAccountUnlock(username string) (string, error) {
	user, err := utils.ValidateIdentifier(username)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER USER %s ACCOUNT UNLOCK", user), nil
}

// BuildDropUser assembles the DROP USER ... CASCADE statement. CASCADE
// removes the account's dependent schema objects.
func BuildDropUser(username string) (string, error) {
	user, err := utils.ValidateIdentifier(username)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP USER %s CASCADE", user), nil
}

// BuildCreateRole assembles the CREATE ROLE statement, with IDENTIFIED BY
// when a role password is given.
func BuildCreateRole(roleName, password string) (string, error) {
	role, err := utils.ValidateIdentifier(roleName)
	if err != nil {
		return "", err
	}
	if password == "" {
		return fmt.Sprintf("CREATE ROLE %s", role), nil
	}
	if err := utils.ValidatePassword(password); err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE ROLE %s IDENTIFIED BY %s", role, password), nil
}

// BuildAlterRolePassword assembles the ALTER ROLE ... IDENTIFIED BY statement.
func BuildAlterRolePassword(roleName, password string) (string, error) {
	role, err := utils.ValidateIdentifier(roleName)
	if err != nil {
		return "", err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER ROLE %s IDENTIFIED BY %s", role, password), nil
}

// BuildDropRole assembles the DROP ROLE statement.
func BuildDropRole(roleName string) (string, error) {
	role, err := utils.ValidateIdentifier(roleName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP ROLE %s", role), nil
}

func buildProfileLimits(sessionsPerUser, connectTime, idleTime string) (string, error) {
	var b strings.Builder
	if sessionsPerUser != "" {
		limit, err := utils.ValidateLimit(sessionsPerUser)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " SESSIONS_PER_USER %s", limit)
	}
	if connectTime != "" {
		limit, err := utils.ValidateLimit(connectTime)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " CONNECT_TIME %s", limit)
	}
	if idleTime != "" {
		limit, err := utils.ValidateLimit(idleTime)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " IDLE_TIME %s", limit)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("profile requires at least one resource limit")
	}
	return b.String(), nil
}

// BuildCreateProfile assembles the CREATE PROFILE ... LIMIT statement.
func BuildCreateProfile(profileName, sessionsPerUser, connectTime, idleTime string) (string, error) {
	profile, err := utils.ValidateIdentifier(profileName)
	if err != nil {
		return "", err
	}
	limits, err := buildProfileLimits(sessionsPerUser, connectTime, idleTime)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE PROFILE %s LIMIT%s", profile, limits), nil
}

// BuildAlterProfile assembles the ALTER PROFILE ... LIMIT statement.
func BuildAlterProfile(profileName, sessionsPerUser, connectTime, idleTime string) (string, error) {
	profile, err := utils.ValidateIdentifier(profileName)
	if err != nil {
		return "", err
	}
	limits, err := buildProfileLimits(sessionsPerUser, connectTime, idleTime)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER PROFILE %s LIMIT%s", profile, limits), nil
}

// BuildDropProfile assembles the DROP PROFILE ... CASCADE statement.
// CASCADE reassigns affected accounts to the DEFAULT profile.
func BuildDropProfile(profileName string) (string, error) {
	profile, err := utils.ValidateIdentifier(profileName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP PROFILE %s CASCADE", profile), nil
}

// BuildGrantSystem assembles the system privilege GRANT statement.
func BuildGrantSystem(privilege, grantee string, withAdminOption bool) (string, error) {
	priv, err := utils.ValidatePrivilege(privilege)
	if err != nil {
		return "", err
	}
	to, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	stmt := fmt.Sprintf("GRANT %s TO %s", priv, to)
	if withAdminOption {
		stmt += " WITH ADMIN OPTION"
	}
	return stmt, nil
}

// BuildRevokeSystem assembles the system privilege REVOKE statement.
func BuildRevokeSystem(privilege, grantee string) (string, error) {
	priv, err := utils.ValidatePrivilege(privilege)
	if err != nil {
		return "", err
	}
	from, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REVOKE %s FROM %s", priv, from), nil
}

// BuildGrantRole assembles the role GRANT statement.
func BuildGrantRole(roleName, grantee string, withAdminOption bool) (string, error) {
	role, err := utils.ValidateIdentifier(roleName)
	if err != nil {
		return "", err
	}
	to, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	stmt := fmt.Sprintf("GRANT %s TO %s", role, to)
	if withAdminOption {
		stmt += " WITH ADMIN OPTION"
	}
	return stmt, nil
}

// BuildRevokeRole assembles the role REVOKE statement.
func BuildRevokeRole(roleName, grantee string) (string, error) {
	role, err := utils.ValidateIdentifier(roleName)
	if err != nil {
		return "", err
	}
	from, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REVOKE %s FROM %s", role, from), nil
}

// BuildGrantObject assembles the object privilege GRANT statement.
func BuildGrantObject(privilege, object, grantee string, withGrantOption bool) (string, error) {
	priv, err := utils.ValidatePrivilege(privilege)
	if err != nil {
		return "", err
	}
	obj, err := utils.ValidateObjectName(object)
	if err != nil {
		return "", err
	}
	to, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	stmt := fmt.Sprintf("GRANT %s ON %s TO %s", priv, obj, to)
	if withGrantOption {
		stmt += " WITH GRANT OPTION"
	}
	return stmt, nil
}

// BuildRevokeObject assembles the object privilege REVOKE statement.
func BuildRevokeObject(privilege, object, grantee string) (string, error) {
	priv, err := utils.ValidatePrivilege(privilege)
	if err != nil {
		return "", err
	}
	obj, err := utils.ValidateObjectName(object)
	if err != nil {
		return "", err
	}
	from, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REVOKE %s ON %s FROM %s", priv, obj, from), nil
}

// BuildGrantColumn assembles the column-level GRANT statement.
func BuildGrantColumn(privilege, object, column, grantee string) (string, error) {
	priv, err := utils.ValidatePrivilege(privilege)
	if err != nil {
		return "", err
	}
	obj, err := utils.ValidateObjectName(object)
	if err != nil {
		return "", err
	}
	col, err := utils.ValidateIdentifier(column)
	if err != nil {
		return "", err
	}
	to, err := utils.ValidateIdentifier(grantee)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("GRANT %s (%s) ON %s TO %s", priv, col, obj, to), nil
}
