package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/flashurl/pkg/database"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env             string `yaml:"env" validate:"oneof=dev stage prod"`
	BaseURL         string `yaml:"base_url" validate:"required,http_url"`
	ShortCodeLength int    `yaml:"short_code_length" validate:"min=4,max=32"`
	Log             `yaml:"log"`
	HTTPServer      `yaml:"http_server"`
	QR              `yaml:"qr"`
	Storage         `yaml:"storage"`
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel maps the configured level name onto slog.
func (l *Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type HTTPServer struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// TLS reports whether both a certificate and a key are configured.
func (s *HTTPServer) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

type QR struct {
	Scale int `yaml:"scale" validate:"min=1,max=50"`
}

type Storage struct {
	Driver          string        `yaml:"driver" validate:"oneof=sqlite postgres"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"min=0"`
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"min=1"`
	SQLite          `yaml:"sqlite"`
	Postgres        `yaml:"postgres"`
}

var defaultStorage = Storage{
	Driver:          DriverSQLite,
	QueryTimeout:    3 * time.Second,
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	SQLite: SQLite{
		Path: "urls.db",
	},
	Postgres: Postgres{
		Host:    "localhost",
		Port:    5432,
		SSLMode: "disable",
	},
}

// SQLDriver returns the database/sql driver name for the configured storage.
func (s *Storage) SQLDriver() string {
	if s.Driver == DriverPostgres {
		return database.DriverPostgres
	}
	return database.DriverSQLite
}

// DSN returns the connection string for the configured storage.
func (s *Storage) DSN() string {
	if s.Driver == DriverPostgres {
		return s.Postgres.DSN()
	}
	return database.SQLiteDSN(s.SQLite.Path)
}

// MigrationURL returns the database URL understood by the migrations runner.
func (s *Storage) MigrationURL() string {
	if s.Driver == DriverPostgres {
		return s.Postgres.DSN()
	}
	return "sqlite://" + s.SQLite.Path
}

type SQLite struct {
	Path string `yaml:"path"`
}

type Postgres struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"db"`
	SSLMode  string `yaml:"sslmode"`
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

// Load reads the YAML file at path on top of the defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	setDefaults(&cfg)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Storage.Driver == DriverSQLite && strings.TrimSpace(c.Storage.SQLite.Path) == "" {
		return errors.New("storage.sqlite.path is required for the sqlite driver")
	}

	if c.Storage.Driver == DriverPostgres && (c.Storage.Postgres.User == "" || c.Storage.Postgres.DB == "") {
		return errors.New("storage.postgres.user and storage.postgres.db are required for the postgres driver")
	}

	return nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.BaseURL = "http://localhost:8080"
	cfg.ShortCodeLength = 6
	cfg.Log = Log{Level: "info"}
	cfg.HTTPServer = defaultHTTPServer
	cfg.QR = QR{Scale: 10}
	cfg.Storage = defaultStorage
}
