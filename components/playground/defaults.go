package playground

// Gesture action names.
const (
	ActionClick       = "click"
	ActionDoubleClick = "double_click"
	ActionContextMenu = "context_menu"
	ActionEnter       = "enter"
	ActionLeave       = "leave"
	ActionStart       = "start"
	ActionDrop        = "drop"
	ActionChange      = "change"
	ActionSelect      = "select"
	ActionAlert       = "alert"
	ActionConfirm     = "confirm"
	ActionPrompt      = "prompt"
	ActionOpen        = "open"
	ActionClose       = "close"
)

// DragToken is the payload marker the drop zone accepts.
const DragToken = "drag-item"

// Fixed option sets rendered by the page.
var (
	DropdownOptions = []string{"Option 1", "Option 2", "Option 3"}
	RadioOptions    = []string{"Radio 1", "Radio 2"}
	CountryCodes    = []string{"+1", "+44", "+91", "+61"}
)

const waitingForAction = "Waiting for action..."

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Key:           WidgetClick,
		Name:          "Single Click",
		Category:      "mouse",
		DefaultStatus: waitingForAction,
		Delayable:     true,
		DOMID:         "click-btn",
		Actions:       []WidgetAction{{Name: ActionClick, Schema: emptyPayloadSchema()}},
	},
	{
		Key:           WidgetDoubleClick,
		Name:          "Double Click",
		Category:      "mouse",
		DefaultStatus: waitingForAction,
		Delayable:     true,
		DOMID:         "dbl-click-btn",
		Actions:       []WidgetAction{{Name: ActionDoubleClick, Schema: emptyPayloadSchema()}},
	},
	{
		Key:           WidgetRightClick,
		Name:          "Right Click",
		Category:      "mouse",
		DefaultStatus: waitingForAction,
		Delayable:     true,
		DOMID:         "right-click-btn",
		Actions:       []WidgetAction{{Name: ActionContextMenu, Schema: emptyPayloadSchema()}},
	},
	{
		Key:           WidgetHover,
		Name:          "Hover Area",
		Category:      "mouse",
		DefaultStatus: "Hover over me!",
		DOMID:         "hover-area",
		Actions: []WidgetAction{
			{Name: ActionEnter, Schema: emptyPayloadSchema()},
			{Name: ActionLeave, Schema: emptyPayloadSchema()},
		},
	},
	{
		Key:           WidgetDrag,
		Name:          "Drag and Drop",
		Category:      "mouse",
		DefaultStatus: "Waiting for drop...",
		Delayable:     true,
		DOMID:         "drop-zone",
		Actions: []WidgetAction{
			{Name: ActionStart, Schema: emptyPayloadSchema()},
			{Name: ActionDrop, Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"token": map[string]any{"type": "string"},
				},
			}},
		},
	},
	{
		Key:           WidgetInput,
		Name:          "Text Input",
		Category:      "input",
		DefaultStatus: "Waiting for input...",
		DOMID:         "text-input",
		Actions: []WidgetAction{{Name: ActionChange, Schema: map[string]any{
			"type":       "object",
			"required":   []string{"value"},
			"properties": map[string]any{"value": map[string]any{"type": "string"}},
		}}},
	},
	{
		Key:           WidgetDropdown,
		Name:          "Dropdown",
		Category:      "input",
		DefaultStatus: "Select an option",
		DOMID:         "select-dropdown",
		Actions: []WidgetAction{{Name: ActionSelect, Schema: map[string]any{
			"type":     "object",
			"required": []string{"value"},
			"properties": map[string]any{
				"value": map[string]any{"type": "string", "enum": append([]string{""}, DropdownOptions...)},
			},
		}}},
	},
	{
		Key:           WidgetRadio,
		Name:          "Radio Buttons",
		Category:      "input",
		DefaultStatus: "None selected",
		DOMID:         "radio-group",
		Actions: []WidgetAction{{Name: ActionChange, Schema: map[string]any{
			"type":     "object",
			"required": []string{"value"},
			"properties": map[string]any{
				"value": map[string]any{"type": "string", "enum": RadioOptions},
			},
		}}},
	},
	{
		Key:           WidgetCheckbox,
		Name:          "Checkbox",
		Category:      "input",
		DefaultStatus: "Unchecked",
		DOMID:         "checkbox",
		Actions: []WidgetAction{{Name: ActionChange, Schema: map[string]any{
			"type":       "object",
			"required":   []string{"checked"},
			"properties": map[string]any{"checked": map[string]any{"type": "boolean"}},
		}}},
	},
	{
		Key:           WidgetUpload,
		Name:          "File Upload",
		Category:      "timing",
		DefaultStatus: "No file selected",
		DOMID:         "file-upload",
		Actions: []WidgetAction{{Name: ActionSelect, Schema: map[string]any{
			"type":     "object",
			"required": []string{"file_name"},
			"properties": map[string]any{
				"file_name": map[string]any{"type": "string", "minLength": 1},
			},
		}}},
	},
	{
		Key:           WidgetDelayed,
		Name:          "Timed Action",
		Category:      "timing",
		DefaultStatus: "Ready to click",
		DOMID:         "delayed-btn",
		Actions:       []WidgetAction{{Name: ActionStart, Schema: emptyPayloadSchema()}},
	},
	{
		Key:      WidgetLocator,
		Name:     "Duplicate Locators",
		Category: "locators",
		DOMID:    "duplicate-locators",
		Actions: []WidgetAction{{Name: ActionClick, Schema: map[string]any{
			"type":     "object",
			"required": []string{"variant"},
			"properties": map[string]any{
				"variant": map[string]any{"type": "string", "enum": []string{LocatorBlue, LocatorYellow}},
			},
		}}},
	},
	{
		Key:      WidgetPopup,
		Name:     "Native Dialogs",
		Category: "dialogs",
		DOMID:    "popup-status",
		Actions: []WidgetAction{
			{Name: ActionAlert, Schema: emptyPayloadSchema()},
			{Name: ActionConfirm, Schema: map[string]any{
				"type":       "object",
				"required":   []string{"confirmed"},
				"properties": map[string]any{"confirmed": map[string]any{"type": "boolean"}},
			}},
			{Name: ActionPrompt, Schema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"value": map[string]any{"type": "string"}},
			}},
		},
	},
	{
		Key:           WidgetModal,
		Name:          "Modal",
		Category:      "dialogs",
		DefaultStatus: "Closed",
		DOMID:         "open-modal-btn",
		Actions: []WidgetAction{
			{Name: ActionOpen, Schema: emptyPayloadSchema()},
			{Name: ActionClose, Schema: emptyPayloadSchema()},
		},
	},
	{
		Key:         WidgetRegistration,
		Name:        "Registration Form",
		Description: "Multi-field form with aggregated validation and randomized submission latency",
		Category:    "forms",
		DOMID:       "registration-form",
	},
	{
		Key:           WidgetTable,
		Name:          "Orders Table",
		Description:   "Editable, reorderable dataset",
		Category:      "data",
		DefaultStatus: "Ready",
		DOMID:         "orders-table",
	},
}

// DefaultWidgetDefinitions returns a copy of the built-in catalog.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

func emptyPayloadSchema() map[string]any {
	return map[string]any{"type": "object"}
}

// DefaultSeedRecords returns the rows the orders table starts with.
func DefaultSeedRecords() []TableRecord {
	return []TableRecord{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", OrderID: "ORD-10234", Price: "$120"},
		{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", OrderID: "ORD-20871", Price: "$75"},
		{ID: 3, FirstName: "Carlos", LastName: "Rivera", Email: "carlos.rivera@example.com", OrderID: "ORD-33410", Price: "$42"},
		{ID: 4, FirstName: "Aisha", LastName: "Khan", Email: "aisha.khan@example.com", OrderID: "ORD-48125", Price: "$310"},
		{ID: 5, FirstName: "Mei", LastName: "Tanaka", Email: "mei.tanaka@example.com", OrderID: "ORD-59902", Price: "$18"},
	}
}
