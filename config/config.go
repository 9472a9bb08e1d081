package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds application configuration loaded from environment variables and .env file.
type AppConfig struct {
	// Privileged catalog connection (SELECT ANY DICTIONARY account)
	OracleHost     string
	OraclePort     int
	OracleService  string
	OracleUser     string
	OraclePass     string

	// Application store connection (credential and contact tables)
	AppDBHost string
	AppDBPort int
	AppDBUser string
	AppDBPass string
	AppDBName string

	// HTTP
	ListenPort    string
	SessionSecret string

	// Logging config
	LogLevel      string
	LogFile       string
	LogMaxSize    int // MB
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool

	// Startup seed credential (pre-provisioned security administrator)
	SeedAdminUser string
	SeedAdminPass string

	// Built-in catalog objects excluded from listings
	SystemAccounts    []string
	SystemRoles       []string
	SystemTablespaces []string
}

// Cfg is the global application configuration instance.
var Cfg AppConfig

// LoadConfig loads application configuration from .env file and environment variables.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		// Standard log here since logger is not initialized yet
		log.Printf("[WARN] .env file not found or cannot be loaded: %v", err)
	} else {
		log.Printf("[INFO] .env file loaded successfully")
	}

	Cfg.OracleHost = getEnv("ORACLE_HOST", "127.0.0.1")
	Cfg.OraclePort = getEnvInt("ORACLE_PORT", 1521)
	Cfg.OracleService = getEnv("ORACLE_SERVICE", "FREEPDB1")
	Cfg.OracleUser = getEnv("ORACLE_USER", "SEC_ADMIN")
	Cfg.OraclePass = getEnv("ORACLE_PASS", "")

	Cfg.AppDBHost = getEnv("APPDB_HOST", "127.0.0.1")
	Cfg.AppDBPort = getEnvInt("APPDB_PORT", 3306)
	Cfg.AppDBUser = getEnv("APPDB_USER", "root")
	Cfg.AppDBPass = getEnv("APPDB_PASS", "")
	Cfg.AppDBName = getEnv("APPDB_NAME", "oraconsole")

	Cfg.ListenPort = getEnv("PORT", "8080")
	Cfg.SessionSecret = getEnv("SESSION_SECRET", "change-me")

	Cfg.LogLevel = getEnv("LOG_LEVEL", "INFO")
	Cfg.LogFile = getEnv("LOG_FILE", "/var/log/oraconsole/oraconsole.log")
	Cfg.LogMaxSize = getEnvInt("LOG_MAX_SIZE", 10)
	Cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 3)
	Cfg.LogMaxAge = getEnvInt("LOG_MAX_AGE", 28)
	Cfg.LogCompress = getEnvBool("LOG_COMPRESS", true)

	Cfg.SeedAdminUser = getEnv("SEED_ADMIN_USER", "SEC_ADMIN")
	Cfg.SeedAdminPass = getEnv("SEED_ADMIN_PASS", "")

	Cfg.SystemAccounts = getEnvStringSlice("SYSTEM_ACCOUNTS", []string{
		"SYS",
		"SYSTEM",
		"SYSAUX",
		"XS$NULL",
	})
	Cfg.SystemRoles = getEnvStringSlice("SYSTEM_ROLES", []string{
		"CONNECT",
		"RESOURCE",
		"DBA",
		"SELECT_CATALOG_ROLE",
	})
	Cfg.SystemTablespaces = getEnvStringSlice("SYSTEM_TABLESPACES", []string{
		"SYSTEM",
		"SYSAUX",
		"TEMP",
		"UNDOTBS1",
	})

	log.Printf("[INFO] Config loaded - catalog: %s@%s:%d/%s, app store: %s@%s:%d/%s, LogLevel: %s",
		Cfg.OracleUser, Cfg.OracleHost, Cfg.OraclePort, Cfg.OracleService,
		Cfg.AppDBUser, Cfg.AppDBHost, Cfg.AppDBPort, Cfg.AppDBName, Cfg.LogLevel)

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// getEnvStringSlice parses a comma-separated environment variable into a string slice.
func getEnvStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		items := strings.Split(val, ",")
		result := make([]string, 0, len(items))
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, strings.ToUpper(trimmed))
			}
		}
		return result
	}
	return defaultVal
}

// IsSystemAccount reports whether an account name is in the system exclusion list.
func IsSystemAccount(name string) bool {
	upper := strings.ToUpper(name)
	for _, sys := range Cfg.SystemAccounts {
		if upper == sys {
			return true
		}
	}
	return strings.HasPrefix(upper, "C##")
}

// IsSystemRole reports whether a role name is in the system exclusion list.
func IsSystemRole(name string) bool {
	upper := strings.ToUpper(name)
	for _, sys := range Cfg.SystemRoles {
		if upper == sys {
			return true
		}
	}
	return false
}
