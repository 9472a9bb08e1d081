package services

import (
	"fmt"

	"gorm.io/gorm"

	"oraconsole/models"
	"oraconsole/utils"
)

// In-memory repository fakes for service tests.

type fakeAppLoginRepo struct {
	records map[string]models.AppLoginUser
	findErr error
	saveErr error
	delErr  error
	deleted []string
}

func newFakeAppLoginRepo() *fakeAppLoginRepo {
	return &fakeAppLoginRepo{records: map[string]models.AppLoginUser{}}
}

func (f *fakeAppLoginRepo) FindByUsername(_ *gorm.DB, username string) (*models.AppLoginUser, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if r, ok := f.records[utils.NormalizeUsername(username)]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeAppLoginRepo) Save(_ *gorm.DB, user models.AppLoginUser) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	user.Username = utils.NormalizeUsername(user.Username)
	f.records[user.Username] = user
	return nil
}

func (f *fakeAppLoginRepo) UpdatePassword(_ *gorm.DB, username, passwordHash string) error {
	name := utils.NormalizeUsername(username)
	r, ok := f.records[name]
	if !ok {
		return nil
	}
	r.PasswordHash = passwordHash
	f.records[name] = r
	return nil
}

func (f *fakeAppLoginRepo) Delete(_ *gorm.DB, username string) error {
	name := utils.NormalizeUsername(username)
	f.deleted = append(f.deleted, name)
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.records, name)
	return nil
}

type fakeContactRepo struct {
	profiles map[string]models.ContactProfile
	deleted  []string
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{profiles: map[string]models.ContactProfile{}}
}

func (f *fakeContactRepo) GetByUsername(_ *gorm.DB, username string) (*models.ContactProfile, error) {
	if p, ok := f.profiles[utils.NormalizeUsername(username)]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeContactRepo) Upsert(_ *gorm.DB, profile models.ContactProfile) error {
	profile.Username = utils.NormalizeUsername(profile.Username)
	f.profiles[profile.Username] = profile
	return nil
}

func (f *fakeContactRepo) Delete(_ *gorm.DB, username string) error {
	name := utils.NormalizeUsername(username)
	f.deleted = append(f.deleted, name)
	delete(f.profiles, name)
	return nil
}

type fakeUserRepo struct {
	accounts  map[string]models.Account
	quotas    map[string]string
	roles     map[string][]string
	listErr   error
	quotaErr  error
	createErr error
	dropErr   error
	dropped   []string
	created   []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		accounts: map[string]models.Account{},
		quotas:   map[string]string{},
		roles:    map[string][]string{},
	}
}

func (f *fakeUserRepo) GetAll() ([]models.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeUserRepo) GetByName(username string) (*models.Account, error) {
	if a, ok := f.accounts[utils.NormalizeUsername(username)]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetQuota(username, tablespace string) (string, error) {
	if f.quotaErr != nil {
		return "", f.quotaErr
	}
	if q, ok := f.quotas[utils.NormalizeUsername(username)]; ok {
		return q, nil
	}
	return "0M", nil
}

func (f *fakeUserRepo) GetRoles(username string) ([]string, error) {
	return f.roles[utils.NormalizeUsername(username)], nil
}

func (f *fakeUserRepo) GetPrivileges(username string) ([]models.PrivilegeGrant, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(username, password, defaultTablespace, temporaryTablespace, quota string) error {
	if f.createErr != nil {
		return f.createErr
	}
	name := utils.NormalizeUsername(username)
	if _, ok := f.accounts[name]; ok {
		return fmt.Errorf("ORA-01920: user name '%s' conflicts with another user or role name", name)
	}
	f.accounts[name] = models.Account{Username: name, AccountStatus: "OPEN"}
	f.created = append(f.created, name)
	return nil
}

func (f *fakeUserRepo) Alter(username, password, defaultTablespace, temporaryTablespace, quota, profile string) error {
	return nil
}

func (f *fakeUserRepo) Lock(username string) error   { return nil }
func (f *fakeUserRepo) Unlock(username string) error { return nil }

func (f *fakeUserRepo) Drop(username string) error {
	name := utils.NormalizeUsername(username)
	f.dropped = append(f.dropped, name)
	if f.dropErr != nil {
		return f.dropErr
	}
	delete(f.accounts, name)
	return nil
}

type fakePrivilegeRepo struct {
	held    map[string]map[string]bool
	granted []string
	revoked []string
}

func newFakePrivilegeRepo() *fakePrivilegeRepo {
	return &fakePrivilegeRepo{held: map[string]map[string]bool{}}
}

func (f *fakePrivilegeRepo) hold(username string, privileges ...string) {
	name := utils.NormalizeUsername(username)
	if f.held[name] == nil {
		f.held[name] = map[string]bool{}
	}
	for _, p := range privileges {
		f.held[name][p] = true
	}
}

func (f *fakePrivilegeRepo) GetAll() []models.PrivilegeGrant { return []models.PrivilegeGrant{} }

func (f *fakePrivilegeRepo) HasPrivilege(username, privilege string) bool {
	return f.held[utils.NormalizeUsername(username)][privilege]
}

func (f *fakePrivilegeRepo) GrantSystem(privilege, grantee string, withAdminOption bool) error {
	f.granted = append(f.granted, privilege+" TO "+utils.NormalizeUsername(grantee))
	f.hold(grantee, privilege)
	return nil
}

func (f *fakePrivilegeRepo) RevokeSystem(privilege, grantee string) error {
	f.revoked = append(f.revoked, privilege+" FROM "+utils.NormalizeUsername(grantee))
	delete(f.held[utils.NormalizeUsername(grantee)], privilege)
	return nil
}

func (f *fakePrivilegeRepo) GrantRole(roleName, grantee string, withAdminOption bool) error {
	return nil
}
func (f *fakePrivilegeRepo) RevokeRole(roleName, grantee string) error { return nil }
func (f *fakePrivilegeRepo) GrantObject(privilege, object, grantee string, withGrantOption bool) error {
	return nil
}
func (f *fakePrivilegeRepo) RevokeObject(privilege, object, grantee string) error { return nil }
func (f *fakePrivilegeRepo) GrantColumn(privilege, object, column, grantee string) error {
	return nil
}
func (f *fakePrivilegeRepo) GetAvailableTablespaces() []string { return []string{"USERS"} }
