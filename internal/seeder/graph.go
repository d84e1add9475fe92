package seeder

import (
	"fmt"

	"github.com/Rana718/mcpseed/internal/types"
)

// DependencyGraph orders tables so every referenced table precedes the tables
// that reference it. Ties keep declaration order.
type DependencyGraph struct {
	tables map[string]types.SchemaTable
	names  []string
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]types.SchemaTable),
	}
}

func (g *DependencyGraph) AddTable(table types.SchemaTable) {
	if _, ok := g.tables[table.Name]; !ok {
		g.names = append(g.names, table.Name)
	}
	g.tables[table.Name] = table
}

func (g *DependencyGraph) BuildCreationOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table, ok := g.tables[tableName]
		if !ok {
			return fmt.Errorf("table %s is referenced but not declared", tableName)
		}

		temp[tableName] = true
		for _, dep := range table.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.names {
		if !visited[tableName] {
			if err := visit(tableName); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

// OrderTables returns tables sorted parents-first.
func OrderTables(tables []types.SchemaTable) ([]types.SchemaTable, error) {
	g := NewDependencyGraph()
	for _, t := range tables {
		g.AddTable(t)
	}
	order, err := g.BuildCreationOrder()
	if err != nil {
		return nil, err
	}
	sorted := make([]types.SchemaTable, len(order))
	for i, name := range order {
		sorted[i] = g.tables[name]
	}
	return sorted, nil
}
