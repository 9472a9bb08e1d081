// Package testutil starts a temporary in-memory MySQL-compatible server
// so repository and service tests can run real SQL without an external
// database.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"
	"time"

	sqle "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/server"
	gmssql "github.com/dolthub/go-mysql-server/sql"
	_ "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testDatabase = "console_test"

func freePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// StartServer launches a temporary in-memory SQL server and returns its
// DSN. The server is torn down when the test finishes.
func StartServer(t *testing.T) string {
	t.Helper()

	port, err := freePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	db := memory.NewDatabase(testDatabase)
	provider := memory.NewDBProvider(db)
	engine := sqle.NewDefault(provider)

	config := server.Config{
		Protocol: "tcp",
		Address:  fmt.Sprintf("localhost:%d", port),
	}
	s, err := server.NewServer(config, engine, gmssql.NewContext, memory.NewSessionBuilder(provider), nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	go func() {
		_ = s.Start()
	}()
	t.Cleanup(func() {
		_ = s.Close()
	})

	// Poll server readiness with timeout to prevent indefinite blocking
	readyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-readyCtx.Done():
			t.Fatalf("server failed to start within timeout: %v", readyCtx.Err())
		case <-ticker.C:
			conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), 100*time.Millisecond)
			if err == nil {
				conn.Close()
				return fmt.Sprintf("root:@tcp(localhost:%d)/%s?parseTime=true", port, testDatabase)
			}
		}
	}
}

// OpenSQL starts a temporary server and returns a database/sql handle to it.
func OpenSQL(t *testing.T) *sql.DB {
	t.Helper()

	dsn := StartServer(t)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open sql connection: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping test server: %v", err)
	}
	return db
}

// OpenGorm starts a temporary server and returns a GORM handle to it.
func OpenGorm(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := StartServer(t)
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm connection: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
