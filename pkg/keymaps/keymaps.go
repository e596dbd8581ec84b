package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

// KeyDefinitions lists every configurable action. Action names are lower
// case because config keys are case-insensitive.
var KeyDefinitions = map[string]KeyDefinition{
	"show_help":      {"?", "show/hide commands"},
	"quit":           {"q, ctrl+c", "quit"},
	"toggle_done":    {"x, space", "toggle done"},
	"add_task":       {"a", "add task"},
	"edit_task":      {"e", "edit task"},
	"delete_task":    {"d", "delete task"},
	"cycle_filter":   {"f", "cycle filter (Alle/Offen/Erledigt)"},
	"categories":     {"c", "manage categories"},
	"rename":         {"r", "rename category"},
	"toggle_sort_by": {"s", "cycle sort by"},
	"toggle_group":   {"g", "cycle group by"},
	"sort_order":     {"o", "toggle sort order"},
	"calendar":       {"v", "toggle calendar view"},
	"jump_to_today":  {"t", "jump to today"},
	"up":             {"up, k", "move up"},
	"down":           {"down, j", "move down"},
	"left":           {"left, h", "move left"},
	"right":          {"right, l", "move right"},
	"confirm":        {"enter", "confirm"},
	"cancel":         {"esc", "cancel"},
	"next_field":     {"tab", "next field"},
	"prev_field":     {"shift+tab", "previous field"},
}

type KeyMap struct {
	ShowHelp     key.Binding
	Quit         key.Binding
	ToggleDone   key.Binding
	AddTask      key.Binding
	EditTask     key.Binding
	DeleteTask   key.Binding
	CycleFilter  key.Binding
	Categories   key.Binding
	Rename       key.Binding
	ToggleSortBy key.Binding
	ToggleGroup  key.Binding
	SortOrder    key.Binding
	Calendar     key.Binding
	JumpToToday  key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	NextField    key.Binding
	PrevField    key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	overrides := make(map[string]string, len(configOverrides))
	for action, keys := range configOverrides {
		overrides[strings.ToLower(action)] = keys
	}

	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := overrides[action]; exists && strings.TrimSpace(override) != "" {
			keyStr = override
		}
		b := parseKeyBinding(keyStr, def.DefaultKey, def.Help)

		switch action {
		case "show_help":
			km.ShowHelp = b
		case "quit":
			km.Quit = b
		case "toggle_done":
			km.ToggleDone = b
		case "add_task":
			km.AddTask = b
		case "edit_task":
			km.EditTask = b
		case "delete_task":
			km.DeleteTask = b
		case "cycle_filter":
			km.CycleFilter = b
		case "categories":
			km.Categories = b
		case "rename":
			km.Rename = b
		case "toggle_sort_by":
			km.ToggleSortBy = b
		case "toggle_group":
			km.ToggleGroup = b
		case "sort_order":
			km.SortOrder = b
		case "calendar":
			km.Calendar = b
		case "jump_to_today":
			km.JumpToToday = b
		case "up":
			km.Up = b
		case "down":
			km.Down = b
		case "left":
			km.Left = b
		case "right":
			km.Right = b
		case "confirm":
			km.Confirm = b
		case "cancel":
			km.Cancel = b
		case "next_field":
			km.NextField = b
		case "prev_field":
			km.PrevField = b
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if strings.TrimSpace(keyStr) == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	var keys []string
	for _, k := range strings.Split(keyStr, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		keys = append(keys, k)
		// bubbletea reports the space bar as " "
		if k == "space" {
			keys = append(keys, " ")
		}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
