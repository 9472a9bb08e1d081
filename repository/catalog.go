package repository

import (
	"database/sql"
	"strconv"
	"strings"

	"oraconsole/config"
)

// Catalog wraps the privileged dictionary connection. Queries are
// written with ? placeholders; when the underlying driver is go-ora
// they are rebound to Oracle :n positional binds before execution.
// DDL statements carry no binds and are executed verbatim.
type Catalog struct {
	db     *sql.DB
	driver string
}

// NewCatalog creates a catalog handle over the global privileged pool.
func NewCatalog() *Catalog {
	return &Catalog{
		db:     config.CatalogDB,
		driver: config.CatalogDriver,
	}
}

// NewCatalogWithDB creates a catalog handle over an explicit connection.
// Used by tests to point repositories at a scripted or in-memory database.
func NewCatalogWithDB(db *sql.DB, driver string) *Catalog {
	return &Catalog{db: db, driver: driver}
}

func (c *Catalog) rebind(query string) string {
	if c.driver != "oracle" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(":")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Query runs a read query after placeholder rebinding.
func (c *Catalog) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return c.db.Query(c.rebind(query), args...)
}

// QueryRow runs a single-row read query after placeholder rebinding.
func (c *Catalog) QueryRow(query string, args ...interface{}) *sql.Row {
	return c.db.QueryRow(c.rebind(query), args...)
}

// Exec executes a statement. DDL passes through unchanged.
func (c *Catalog) Exec(query string, args ...interface{}) (sql.Result, error) {
	return c.db.Exec(c.rebind(query), args...)
}

// queryStrings runs a query returning a single string column.
func (c *Catalog) queryStrings(query string, args ...interface{}) ([]string, error) {
	rows, err := c.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// queryCount runs a COUNT(*) query.
func (c *Catalog) queryCount(query string, args ...interface{}) (int, error) {
	var count int
	if err := c.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
