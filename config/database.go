package config

import (
	"database/sql"
	"fmt"

	"oraconsole/pkg/logger"

	go_ora "github.com/sijms/go-ora/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the global GORM handle for the application-owned store
// (login credentials and contact profiles).
var DB *gorm.DB

// CatalogDB is the privileged connection pool used for Oracle dictionary
// queries and DDL. Queries written with ? placeholders must be rebound
// through repository.Catalog before execution.
var CatalogDB *sql.DB

// CatalogDriver names the driver behind CatalogDB. Repositories use it to
// decide the placeholder style. Tests swap in "mysql".
var CatalogDriver = "oracle"

// ConnectDB establishes the application store connection using GORM.
func ConnectDB() error {
	logger.Infof("Connecting to application store %s@%s:%d/%s",
		Cfg.AppDBUser, Cfg.AppDBHost, Cfg.AppDBPort, Cfg.AppDBName)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		Cfg.AppDBUser,
		Cfg.AppDBPass,
		Cfg.AppDBHost,
		Cfg.AppDBPort,
		Cfg.AppDBName,
	)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Errorf("GORM connection failed: %v", err)
		return err
	}
	logger.Infof("GORM connected successfully to application store %s", Cfg.AppDBName)

	DB = db
	return nil
}

// ConnectCatalog establishes the privileged Oracle catalog connection.
// The connected account needs SELECT ANY DICTIONARY for the full listing
// paths; restricted accounts still resolve their own record through the
// repository fallback.
func ConnectCatalog() error {
	url := go_ora.BuildUrl(Cfg.OracleHost, Cfg.OraclePort, Cfg.OracleService,
		Cfg.OracleUser, Cfg.OraclePass, nil)

	db, err := sql.Open("oracle", url)
	if err != nil {
		logger.Errorf("Oracle catalog connection failed: %v", err)
		return err
	}
	if err := db.Ping(); err != nil {
		logger.Errorf("Oracle catalog ping failed: %v", err)
		return err
	}
	logger.Infof("Connected to Oracle catalog %s:%d/%s as %s",
		Cfg.OracleHost, Cfg.OraclePort, Cfg.OracleService, Cfg.OracleUser)

	CatalogDB = db
	CatalogDriver = "oracle"
	return nil
}
