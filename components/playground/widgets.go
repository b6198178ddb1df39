package playground

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ettle/strcase"
	goerrors "github.com/goliatone/go-errors"
)

// WidgetKey names one interactive practice target. The set is closed: only the
// constants below are valid keys.
type WidgetKey string

const (
	WidgetClick        WidgetKey = "click"
	WidgetDoubleClick  WidgetKey = "doubleClick"
	WidgetRightClick   WidgetKey = "rightClick"
	WidgetHover        WidgetKey = "hover"
	WidgetDrag         WidgetKey = "drag"
	WidgetInput        WidgetKey = "input"
	WidgetDropdown     WidgetKey = "dropdown"
	WidgetRadio        WidgetKey = "radio"
	WidgetCheckbox     WidgetKey = "checkbox"
	WidgetUpload       WidgetKey = "upload"
	WidgetDelayed      WidgetKey = "delayed"
	WidgetLocator      WidgetKey = "locator"
	WidgetPopup        WidgetKey = "popup"
	WidgetModal        WidgetKey = "modal"
	WidgetRegistration WidgetKey = "registration"
	WidgetTable        WidgetKey = "table"
)

var widgetKeys = []WidgetKey{
	WidgetClick,
	WidgetDoubleClick,
	WidgetRightClick,
	WidgetHover,
	WidgetDrag,
	WidgetInput,
	WidgetDropdown,
	WidgetRadio,
	WidgetCheckbox,
	WidgetUpload,
	WidgetDelayed,
	WidgetLocator,
	WidgetPopup,
	WidgetModal,
	WidgetRegistration,
	WidgetTable,
}

// WidgetKeys returns every valid widget key in display order.
func WidgetKeys() []WidgetKey {
	return append([]WidgetKey{}, widgetKeys...)
}

// Valid reports whether k belongs to the closed key set.
func (k WidgetKey) Valid() bool {
	for _, key := range widgetKeys {
		if key == k {
			return true
		}
	}
	return false
}

func (k WidgetKey) String() string { return string(k) }

// DOMID returns the kebab-cased element id used by the rendered page.
func (k WidgetKey) DOMID() string {
	return strcase.ToKebab(string(k))
}

// ParseWidgetKey resolves raw input (camelCase, kebab-case or snake_case) into a
// WidgetKey. Unknown keys produce a not found error naming the closest match.
func ParseWidgetKey(raw string) (WidgetKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", goerrors.New("widget key is required", goerrors.CategoryBadInput)
	}
	normalized := strcase.ToCamel(candidate)
	for _, key := range widgetKeys {
		if string(key) == candidate || string(key) == normalized {
			return key, nil
		}
	}
	msg := fmt.Sprintf("unknown widget key %q", raw)
	if suggestion := closestWidgetKey(normalized); suggestion != "" {
		msg = fmt.Sprintf("%s, did you mean %q?", msg, suggestion)
	}
	return "", goerrors.New(msg, goerrors.CategoryNotFound).
		WithMetadata(map[string]any{"widget_key": raw})
}

func closestWidgetKey(input string) WidgetKey {
	input = strings.ToLower(input)
	best := WidgetKey("")
	bestDistance := -1
	for _, key := range widgetKeys {
		d := levenshtein.ComputeDistance(input, strings.ToLower(string(key)))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = key, d
		}
	}
	if bestDistance < 0 || bestDistance > len(input)/2+1 {
		return ""
	}
	return best
}
