package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"` // Time zone
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig admin API configuration
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DBConfig database configuration. Type is sqlite or postgres.
type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"` // Database name, or file path for sqlite
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logger configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// InventoryConfig inventory rules
type InventoryConfig struct {
	LowStockThreshold int    `yaml:"low_stock_threshold"`
	LowStockReport    string `yaml:"low_stock_report"` // cron spec, empty disables
	UserRetentionDays int    `yaml:"user_retention_days"`
	SeedCategories    bool   `yaml:"seed_categories"`
}

// SecurityConfig authentication settings
type SecurityConfig struct {
	JwtSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system"`
	Web       WebConfig       `yaml:"web"`
	Database  DBConfig        `yaml:"database"`
	Logger    LogConfig       `yaml:"logger"`
	Inventory InventoryConfig `yaml:"inventory"`
	Security  SecurityConfig  `yaml:"security"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// GetDatabasePath resolves the sqlite file path against the data directory
func (c *AppConfig) GetDatabasePath() string {
	if filepath.IsAbs(c.Database.Name) || strings.HasPrefix(c.Database.Name, "file:") {
		return c.Database.Name
	}
	return filepath.Join(c.GetDataDir(), c.Database.Name)
}

func (c *AppConfig) initDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// DefaultAppConfig returns the built-in defaults
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "GemTrack",
			Location: "America/Costa_Rica",
			Workdir:  "/var/gemtrack",
			Debug:    false,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1816,
		},
		Database: DBConfig{
			Type:     "sqlite",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "gemtrack.db",
			User:     "postgres",
			Passwd:   "",
			MaxConn:  20,
			IdleConn: 5,
			Debug:    false,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/gemtrack/logs/gemtrack.log",
		},
		Inventory: InventoryConfig{
			LowStockThreshold: 10,
			LowStockReport:    "0 0 8 * * *",
			UserRetentionDays: 30,
			SeedCategories:    true,
		},
		Security: SecurityConfig{
			JwtSecret:     "",
			TokenTTLHours: 12,
			AdminUsername: "admin",
			AdminPassword: "",
		},
	}
}

const redactedValue = "******"

// Redacted returns a copy with secrets masked, for printing.
func (c *AppConfig) Redacted() *AppConfig {
	out := *c
	for _, v := range []*string{&out.Security.JwtSecret, &out.Security.AdminPassword, &out.Database.Passwd} {
		if *v != "" {
			*v = redactedValue
		}
	}
	return &out
}

// LoadConfig reads cfile over the defaults, then applies a .env file and GEMTRACK_* variables.
// An empty cfile falls back to ./gemtrack.yml or /etc/gemtrack.yml when present.
func LoadConfig(cfile string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}
	if cfile == "" {
		for _, f := range []string{"gemtrack.yml", "/etc/gemtrack.yml"} {
			if _, err := os.Stat(f); err == nil {
				cfile = f
				break
			}
		}
	}

	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}
	cfg.applyEnv()
	if err := cfg.initDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	setEnvString("GEMTRACK_SYSTEM_WORKDIR", &c.System.Workdir)
	setEnvString("GEMTRACK_SYSTEM_LOCATION", &c.System.Location)
	setEnvBool("GEMTRACK_SYSTEM_DEBUG", &c.System.Debug)

	setEnvString("GEMTRACK_WEB_HOST", &c.Web.Host)
	setEnvInt("GEMTRACK_WEB_PORT", &c.Web.Port)

	setEnvString("GEMTRACK_DB_TYPE", &c.Database.Type)
	setEnvString("GEMTRACK_DB_HOST", &c.Database.Host)
	setEnvInt("GEMTRACK_DB_PORT", &c.Database.Port)
	setEnvString("GEMTRACK_DB_NAME", &c.Database.Name)
	setEnvString("GEMTRACK_DB_USER", &c.Database.User)
	setEnvString("GEMTRACK_DB_PWD", &c.Database.Passwd)
	setEnvInt("GEMTRACK_DB_MAX_CONN", &c.Database.MaxConn)
	setEnvInt("GEMTRACK_DB_IDLE_CONN", &c.Database.IdleConn)
	setEnvBool("GEMTRACK_DB_DEBUG", &c.Database.Debug)

	setEnvString("GEMTRACK_LOGGER_MODE", &c.Logger.Mode)
	setEnvBool("GEMTRACK_LOGGER_FILE_ENABLE", &c.Logger.FileEnable)
	setEnvString("GEMTRACK_LOGGER_FILENAME", &c.Logger.Filename)

	setEnvInt("GEMTRACK_LOW_STOCK_THRESHOLD", &c.Inventory.LowStockThreshold)
	setEnvString("GEMTRACK_LOW_STOCK_REPORT", &c.Inventory.LowStockReport)
	setEnvInt("GEMTRACK_USER_RETENTION_DAYS", &c.Inventory.UserRetentionDays)

	setEnvString("GEMTRACK_JWT_SECRET", &c.Security.JwtSecret)
	setEnvInt("GEMTRACK_TOKEN_TTL_HOURS", &c.Security.TokenTTLHours)
	setEnvString("GEMTRACK_ADMIN_USERNAME", &c.Security.AdminUsername)
	setEnvString("GEMTRACK_ADMIN_PASSWORD", &c.Security.AdminPassword)
}

func setEnvString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func setEnvInt(name string, dst *int) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*dst = n
		}
	}
}

func setEnvBool(name string, dst *bool) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*dst = b
		}
	}
}
