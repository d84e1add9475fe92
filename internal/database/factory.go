package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/Rana718/mcpseed/internal/database/memory"
	"github.com/Rana718/mcpseed/internal/database/mysql"
	"github.com/Rana718/mcpseed/internal/database/postgres"
	"github.com/Rana718/mcpseed/internal/database/sqlite"
	drv "github.com/go-sql-driver/mysql"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return postgres.New()
	}
}

// Connector opens adapters for the admin database and for each target
// database named by a domain.
type Connector struct {
	cfg *config.Config
	mem *memory.Server
}

func NewConnector(cfg *config.Config) *Connector {
	c := &Connector{cfg: cfg}
	if cfg.Database.Provider == "memory" {
		c.mem = memory.NewServer()
	}
	return c
}

// NewMemoryConnector seeds into the given in-process server regardless of the
// configured provider.
func NewMemoryConnector(cfg *config.Config, server *memory.Server) *Connector {
	return &Connector{cfg: cfg, mem: server}
}

// Memory returns the in-process server, or nil for real providers.
func (c *Connector) Memory() *memory.Server {
	return c.mem
}

func (c *Connector) Provider() string {
	if c.mem != nil {
		return "memory"
	}
	return c.cfg.Database.Provider
}

func (c *Connector) newAdapter() DatabaseAdapter {
	if c.mem != nil {
		return memory.New(c.mem)
	}
	return NewAdapter(c.cfg.Database.Provider)
}

// Admin connects to the maintenance database used for provisioning.
func (c *Connector) Admin(ctx context.Context) (DatabaseAdapter, error) {
	return c.connect(ctx, c.adminName())
}

// Open connects to the named target database.
func (c *Connector) Open(ctx context.Context, name string) (DatabaseAdapter, error) {
	return c.connect(ctx, name)
}

func (c *Connector) connect(ctx context.Context, name string) (DatabaseAdapter, error) {
	adapter := c.newAdapter()
	if err := adapter.Connect(ctx, c.URL(name)); err != nil {
		return nil, err
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, err
	}
	return adapter, nil
}

func (c *Connector) adminName() string {
	switch c.Provider() {
	case "mysql":
		return ""
	case "sqlite", "sqlite3", "memory":
		return ""
	default:
		return c.cfg.Database.AdminName
	}
}

// URL builds the connection string for database name in the configured
// provider's format. An empty name addresses the server (or directory) itself.
func (c *Connector) URL(name string) string {
	db := c.cfg.Database
	switch c.Provider() {
	case "memory":
		return "memory://" + name
	case "mysql":
		mc := drv.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
		mc.DBName = name
		mc.ParseTime = true
		return mc.FormatDSN()
	case "sqlite", "sqlite3":
		if name == "" {
			return "sqlite://" + db.SQLiteDir
		}
		return "sqlite://" + filepath.Join(db.SQLiteDir, name+".db")
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(db.User, db.Password),
			Host:   net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
			Path:   "/" + name,
		}
		if db.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
		}
		return u.String()
	}
}

// GeneratorFor returns a DDL renderer for provider, or an error for
// providers that do not speak SQL.
func GeneratorFor(provider string) (SQLGenerator, error) {
	switch provider {
	case "memory":
		return nil, fmt.Errorf("provider %s has no SQL dialect", provider)
	}
	if gen, ok := NewAdapter(provider).(SQLGenerator); ok {
		return gen, nil
	}
	return nil, fmt.Errorf("provider %s has no SQL dialect", provider)
}
