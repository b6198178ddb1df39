package playground

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// AddRowRequiredMessage is reported when a new row misses a required field.
const AddRowRequiredMessage = "Please fill in First Name, Email and Price"

// TableRecord is one row of the orders table. ID and OrderID are derived by
// the table and never edited.
type TableRecord struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	OrderID   string `json:"order_id"`
	Price     string `json:"price"`
}

// RowFields are the editable fields of a record.
type RowFields struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Price     string `json:"price"`
}

// NewRowInput is the user supplied part of a new record.
type NewRowInput = RowFields

func (f *RowFields) set(name, value string) error {
	switch name {
	case "firstName", "first_name":
		f.FirstName = value
	case "lastName", "last_name":
		f.LastName = value
	case "email":
		f.Email = value
	case "price":
		f.Price = value
	default:
		return goerrors.New(fmt.Sprintf("unknown table field %q", name), goerrors.CategoryBadInput)
	}
	return nil
}

// TableMode is either Viewing or Editing. Keeping the mode at table level
// means at most one row can be edited at a time.
type TableMode interface {
	isTableMode()
}

// Viewing means no row is being edited.
type Viewing struct{}

// Editing holds the row under edit and its draft buffer.
type Editing struct {
	RowID int
	Draft RowFields
}

func (Viewing) isTableMode() {}
func (Editing) isTableMode() {}

// TableResult reports the outcome of a table operation. Message is empty for
// gestures that did not apply and need no feedback.
type TableResult struct {
	Applied bool         `json:"applied"`
	Message string       `json:"message,omitempty"`
	Record  *TableRecord `json:"record,omitempty"`
}

// Table is an ordered, editable, reorderable collection of records. It is not
// safe for concurrent use; the Service serializes access.
type Table struct {
	records []TableRecord
	mode    TableMode
	input   NewRowInput
	intN    func(n int) int
}

// TableOption customizes a table.
type TableOption func(*Table)

// WithRandom overrides the source used to derive order ids.
func WithRandom(intN func(n int) int) TableOption {
	return func(t *Table) {
		if intN != nil {
			t.intN = intN
		}
	}
}

// NewTable builds a table holding a copy of seed.
func NewTable(seed []TableRecord, opts ...TableOption) *Table {
	t := &Table{
		records: append([]TableRecord{}, seed...),
		mode:    Viewing{},
		intN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Records returns the rows in display order.
func (t *Table) Records() []TableRecord {
	return append([]TableRecord{}, t.records...)
}

// Mode returns the current table mode.
func (t *Table) Mode() TableMode {
	return t.mode
}

// Input returns the pending new-row input.
func (t *Table) Input() NewRowInput {
	return t.input
}

// SetInputField updates the pending new-row input.
func (t *Table) SetInputField(name, value string) error {
	return t.input.set(name, value)
}

// View renders the table state for snapshots.
func (t *Table) View() TableView {
	view := TableView{Records: t.Records(), Input: t.input}
	if editing, ok := t.mode.(Editing); ok {
		draft := editing.Draft
		view.Editing = true
		view.EditingID = editing.RowID
		view.Draft = &draft
	}
	return view
}

// AddRow appends a record built from input. First name, email and price are
// required; the id is one more than the current maximum.
func (t *Table) AddRow(input NewRowInput) TableResult {
	input = RowFields{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Price:     strings.TrimSpace(input.Price),
	}
	if err := input.validateRequired(); err != nil {
		return TableResult{Message: AddRowRequiredMessage}
	}
	record := TableRecord{
		ID:        t.nextID(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		OrderID:   fmt.Sprintf("ORD-%05d", 10000+t.intN(90000)),
		Price:     normalizePrice(input.Price),
	}
	t.records = append(t.records, record)
	t.input = NewRowInput{}
	return TableResult{
		Applied: true,
		Message: fmt.Sprintf("Row %d added (%s)", record.ID, record.OrderID),
		Record:  &record,
	}
}

func (f *RowFields) validateRequired() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.FirstName, validation.Required),
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Price, validation.Required),
	)
}

func (t *Table) nextID() int {
	maxID := 0
	for _, r := range t.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

func normalizePrice(price string) string {
	if strings.HasPrefix(price, "$") {
		return price
	}
	return "$" + price
}

// DeleteRow removes the record with id. Deleting an absent id changes nothing.
func (t *Table) DeleteRow(id int) TableResult {
	idx := t.indexOf(id)
	if idx < 0 {
		return TableResult{}
	}
	record := t.records[idx]
	t.records = append(t.records[:idx:idx], t.records[idx+1:]...)
	if editing, ok := t.mode.(Editing); ok && editing.RowID == id {
		t.mode = Viewing{}
	}
	return TableResult{Applied: true, Message: fmt.Sprintf("Row %d deleted", id), Record: &record}
}

// EnterEdit starts editing id. Any edit in progress on another row is
// discarded first.
func (t *Table) EnterEdit(id int) TableResult {
	idx := t.indexOf(id)
	if idx < 0 {
		return TableResult{}
	}
	record := t.records[idx]
	t.mode = Editing{
		RowID: id,
		Draft: RowFields{
			FirstName: record.FirstName,
			LastName:  record.LastName,
			Email:     record.Email,
			Price:     record.Price,
		},
	}
	return TableResult{Applied: true, Message: fmt.Sprintf("Editing row %d", id), Record: &record}
}

// UpdateDraft changes one field of the draft for the row under edit.
func (t *Table) UpdateDraft(id int, field, value string) (TableResult, error) {
	editing, ok := t.mode.(Editing)
	if !ok || editing.RowID != id {
		return TableResult{}, nil
	}
	if err := editing.Draft.set(field, value); err != nil {
		return TableResult{}, err
	}
	t.mode = editing
	return TableResult{Applied: true}, nil
}

// CommitEdit merges the draft into the stored record and leaves edit mode.
func (t *Table) CommitEdit(id int) TableResult {
	editing, ok := t.mode.(Editing)
	if !ok || editing.RowID != id {
		return TableResult{}
	}
	t.mode = Viewing{}
	idx := t.indexOf(id)
	if idx < 0 {
		return TableResult{}
	}
	record := &t.records[idx]
	record.FirstName = editing.Draft.FirstName
	record.LastName = editing.Draft.LastName
	record.Email = editing.Draft.Email
	record.Price = editing.Draft.Price
	updated := *record
	return TableResult{Applied: true, Message: fmt.Sprintf("Row %d updated", id), Record: &updated}
}

// CancelEdit discards the draft and leaves edit mode.
func (t *Table) CancelEdit(id int) TableResult {
	editing, ok := t.mode.(Editing)
	if !ok || editing.RowID != id {
		return TableResult{}
	}
	t.mode = Viewing{}
	return TableResult{Applied: true, Message: fmt.Sprintf("Edit cancelled for row %d", id)}
}

// Reorder moves the record at from to position to. It is a no-op while a row
// is being edited, when from == to, or when either index is out of range.
func (t *Table) Reorder(from, to int) TableResult {
	if _, editing := t.mode.(Editing); editing {
		return TableResult{}
	}
	if from == to || from < 0 || to < 0 || from >= len(t.records) || to >= len(t.records) {
		return TableResult{}
	}
	record := t.records[from]
	rest := append(t.records[:from:from], t.records[from+1:]...)
	moved := make([]TableRecord, 0, len(t.records))
	moved = append(moved, rest[:to]...)
	moved = append(moved, record)
	moved = append(moved, rest[to:]...)
	t.records = moved
	return TableResult{
		Applied: true,
		Message: fmt.Sprintf("Row %d moved to position %d", record.ID, to+1),
		Record:  &record,
	}
}

// ReorderRaw parses drag indexes carried as text. Non-numeric indexes are a
// failed gesture and change nothing.
func (t *Table) ReorderRaw(from, to string) TableResult {
	fromIdx, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return TableResult{}
	}
	toIdx, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return TableResult{}
	}
	return t.Reorder(fromIdx, toIdx)
}

func (t *Table) indexOf(id int) int {
	for i, r := range t.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
