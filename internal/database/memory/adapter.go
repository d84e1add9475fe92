package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/mcpseed/internal/database/common"
)

type Adapter struct {
	server *Server
	name   string
}

func New(server *Server) *Adapter {
	return &Adapter{server: server}
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, "memory://") {
		return fmt.Errorf("failed to parse connection URL: %q", url)
	}
	a.name = strings.TrimPrefix(url, "memory://")
	return nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	if a.name != "" && !a.server.exists(a.name) {
		return common.Unreachable(fmt.Errorf("database %q does not exist", a.name))
	}
	return nil
}

func (a *Adapter) DatabaseExists(ctx context.Context, name string) (bool, error) {
	return a.server.exists(name), nil
}

func (a *Adapter) CreateDatabase(ctx context.Context, name string) error {
	if err := common.CheckIdentifiers(name); err != nil {
		return err
	}
	a.server.create(name)
	return nil
}

func (a *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	state, err := a.server.snapshot(a.name)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{server: a.server, name: a.name, state: state}, nil
}

// TruncateAll removes every row. Identity counters keep running, as with a
// plain TRUNCATE ... CASCADE.
func (a *Adapter) TruncateAll(ctx context.Context) error {
	state, err := a.server.snapshot(a.name)
	if err != nil {
		return err
	}
	for _, t := range state.tables {
		t.rows = nil
		t.index = make(map[int64]int)
	}
	a.server.replace(a.name, state)
	return nil
}
