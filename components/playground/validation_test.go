package playground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaValidatorChecksPayloads(t *testing.T) {
	reg := NewRegistry()
	validator := NewJSONSchemaValidator()

	dropdown, _ := reg.Definition(WidgetDropdown)
	selectAction, ok := dropdown.Action(ActionSelect)
	require.True(t, ok)
	assert.NoError(t, validator.Validate(dropdown, selectAction, map[string]any{"value": "Option 2"}))
	assert.NoError(t, validator.Validate(dropdown, selectAction, map[string]any{"value": ""}))
	assert.Error(t, validator.Validate(dropdown, selectAction, map[string]any{"value": "Option 9"}))
	assert.Error(t, validator.Validate(dropdown, selectAction, nil))

	checkbox, _ := reg.Definition(WidgetCheckbox)
	change, _ := checkbox.Action(ActionChange)
	assert.NoError(t, validator.Validate(checkbox, change, map[string]any{"checked": true}))
	assert.Error(t, validator.Validate(checkbox, change, map[string]any{"checked": "yes"}))

	click, _ := reg.Definition(WidgetClick)
	clickAction, _ := click.Action(ActionClick)
	assert.NoError(t, validator.Validate(click, clickAction, nil))
}

func TestJSONSchemaValidatorSkipsEmptySchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{Key: WidgetHover}
	assert.NoError(t, validator.Validate(def, WidgetAction{Name: ActionEnter}, map[string]any{"anything": 1}))
}
