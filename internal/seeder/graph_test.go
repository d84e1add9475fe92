package seeder

import (
	"testing"

	"github.com/Rana718/mcpseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTablesPutsParentsFirst(t *testing.T) {
	tables := []types.SchemaTable{
		{Name: "grades", Columns: []types.SchemaColumn{
			types.Serial("grade_id"),
			types.References("student_id", "students", "student_id"),
			types.References("course_id", "courses", "course_id"),
		}},
		{Name: "courses", Columns: []types.SchemaColumn{
			types.Serial("course_id"),
			types.References("prof_id", "professors", "prof_id"),
		}},
		{Name: "students", Columns: []types.SchemaColumn{types.Serial("student_id")}},
		{Name: "professors", Columns: []types.SchemaColumn{types.Serial("prof_id")}},
	}

	ordered, err := OrderTables(tables)
	require.NoError(t, err)

	names := make([]string, len(ordered))
	for i, tbl := range ordered {
		names[i] = tbl.Name
	}
	assert.Equal(t, []string{"students", "professors", "courses", "grades"}, names)
}

func TestBuildCreationOrderIgnoresSelfReference(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(types.SchemaTable{Name: "employees", Columns: []types.SchemaColumn{
		types.Serial("emp_id"),
		types.References("manager_id", "employees", "emp_id"),
	}})

	order, err := g.BuildCreationOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"employees"}, order)
	assert.Equal(t, order, g.GetOrder())
}

func TestBuildCreationOrderDetectsCycles(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(types.SchemaTable{Name: "a", Columns: []types.SchemaColumn{
		types.Serial("id"), types.References("b_id", "b", "id"),
	}})
	g.AddTable(types.SchemaTable{Name: "b", Columns: []types.SchemaColumn{
		types.Serial("id"), types.References("a_id", "a", "id"),
	}})

	_, err := g.BuildCreationOrder()
	assert.ErrorContains(t, err, "circular dependency")
}

func TestBuildCreationOrderRejectsUndeclaredReference(t *testing.T) {
	_, err := OrderTables([]types.SchemaTable{{Name: "orders", Columns: []types.SchemaColumn{
		types.Serial("order_id"),
		types.References("customer_id", "customers", "customer_id"),
	}}})
	assert.ErrorContains(t, err, "customers")
}
