package playground

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIntN(v int) func(int) int {
	return func(int) int { return v }
}

func TestTableAddRowDerivesIDOrderAndPrice(t *testing.T) {
	table := NewTable(DefaultSeedRecords(), WithRandom(fixedIntN(4321)))
	res := table.AddRow(NewRowInput{FirstName: " Ann ", Email: "ann@example.com", Price: "10"})
	require.True(t, res.Applied)
	require.NotNil(t, res.Record)
	assert.Equal(t, 6, res.Record.ID)
	assert.Equal(t, "ORD-14321", res.Record.OrderID)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{5}$`), res.Record.OrderID)
	assert.Equal(t, "$10", res.Record.Price)
	assert.Equal(t, "Ann", res.Record.FirstName)
	assert.Equal(t, "Row 6 added (ORD-14321)", res.Message)
	assert.Equal(t, NewRowInput{}, table.Input())

	res = table.AddRow(NewRowInput{FirstName: "Bo", Email: "bo@example.com", Price: "$5"})
	assert.Equal(t, "$5", res.Record.Price)
	assert.Equal(t, 7, res.Record.ID)
}

func TestTableAddRowRequiresFields(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.SetInputField("firstName", "Ann"))
	res := table.AddRow(table.Input())
	assert.False(t, res.Applied)
	assert.Equal(t, AddRowRequiredMessage, res.Message)
	assert.Empty(t, table.Records())
	assert.Equal(t, "Ann", table.Input().FirstName, "input kept after failure")
}

func TestTableIDsUseMaxPlusOne(t *testing.T) {
	table := NewTable([]TableRecord{{ID: 2}, {ID: 9}}, WithRandom(fixedIntN(0)))
	res := table.AddRow(NewRowInput{FirstName: "A", Email: "a@b.c", Price: "1"})
	assert.Equal(t, 10, res.Record.ID)
	assert.Equal(t, "ORD-10000", res.Record.OrderID)

	table.DeleteRow(10)
	res = table.AddRow(NewRowInput{FirstName: "B", Email: "b@b.c", Price: "1"})
	assert.Equal(t, 10, res.Record.ID, "ids can be reused after deleting the maximum")
}

func TestTableDeleteRow(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	res := table.DeleteRow(2)
	assert.True(t, res.Applied)
	assert.Equal(t, "Row 2 deleted", res.Message)
	assert.Len(t, table.Records(), 4)

	res = table.DeleteRow(2)
	assert.False(t, res.Applied)
	assert.Len(t, table.Records(), 4)
}

func TestTableSingleEditor(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	table.EnterEdit(1)
	_, err := table.UpdateDraft(1, "firstName", "Johnny")
	require.NoError(t, err)

	res := table.EnterEdit(3)
	assert.Equal(t, "Editing row 3", res.Message)
	mode, ok := table.Mode().(Editing)
	require.True(t, ok)
	assert.Equal(t, 3, mode.RowID)
	assert.Equal(t, "John", table.Records()[0].FirstName, "abandoned draft never lands")

	res = table.CommitEdit(1)
	assert.False(t, res.Applied, "commit for a row not under edit is ignored")
}

func TestTableCommitAndCancel(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	table.EnterEdit(2)
	_, err := table.UpdateDraft(2, "price", "$80")
	require.NoError(t, err)
	_, err = table.UpdateDraft(2, "nickname", "x")
	require.Error(t, err)

	res := table.CommitEdit(2)
	require.True(t, res.Applied)
	assert.Equal(t, "Row 2 updated", res.Message)
	assert.Equal(t, "$80", table.Records()[1].Price)
	assert.Equal(t, "ORD-20871", table.Records()[1].OrderID)
	assert.IsType(t, Viewing{}, table.Mode())

	table.EnterEdit(2)
	_, _ = table.UpdateDraft(2, "email", "changed@example.com")
	res = table.CancelEdit(2)
	assert.Equal(t, "Edit cancelled for row 2", res.Message)
	assert.Equal(t, "jane.smith@example.com", table.Records()[1].Email)
}

func TestTableDeleteRowUnderEditLeavesEditMode(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	table.EnterEdit(4)
	table.DeleteRow(4)
	assert.IsType(t, Viewing{}, table.Mode())
}

func TestTableReorder(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	res := table.Reorder(2, 0)
	require.True(t, res.Applied)
	assert.Equal(t, "Row 3 moved to position 1", res.Message)
	ids := make([]int, 0, 5)
	for _, r := range table.Records() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{3, 1, 2, 4, 5}, ids)

	res = table.Reorder(0, 4)
	require.True(t, res.Applied)
	assert.Equal(t, 3, table.Records()[4].ID)
}

func TestTableReorderNoOps(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	before := table.Records()

	assert.False(t, table.Reorder(1, 1).Applied)
	assert.False(t, table.Reorder(-1, 2).Applied)
	assert.False(t, table.Reorder(0, 5).Applied)
	assert.False(t, table.ReorderRaw("a", "1").Applied)

	table.EnterEdit(1)
	assert.False(t, table.Reorder(0, 1).Applied, "reorder is blocked while editing")
	assert.Equal(t, before, table.Records())
}

func TestTableViewExposesDraft(t *testing.T) {
	table := NewTable(DefaultSeedRecords())
	table.EnterEdit(5)
	view := table.View()
	assert.True(t, view.Editing)
	assert.Equal(t, 5, view.EditingID)
	require.NotNil(t, view.Draft)
	assert.Equal(t, "Mei", view.Draft.FirstName)
}
