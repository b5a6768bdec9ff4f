package input

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"roguecore/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceTerminal
	DeviceScript
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveNorth
	ActionMoveNorthEast
	ActionMoveEast
	ActionMoveSouthEast
	ActionMoveSouth
	ActionMoveSouthWest
	ActionMoveWest
	ActionMoveNorthWest
	ActionWait

	// Meta / UI
	ActionQuit
	ActionDumpMap
	ActionSaveProgress
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "k", "arrow_up", "north").
type RawInput struct {
	Device Device
	Code   string
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Terminal raw mode and scripted moves deliver one event per key, so each
// RawInput is already debounced; the type keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = defaultBindings()

func defaultBindings() map[string]Action {
	return map[string]Action{
		// Vi keys
		"k": ActionMoveNorth,
		"u": ActionMoveNorthEast,
		"l": ActionMoveEast,
		"n": ActionMoveSouthEast,
		"j": ActionMoveSouth,
		"b": ActionMoveSouthWest,
		"h": ActionMoveWest,
		"y": ActionMoveNorthWest,

		// Numpad
		"8": ActionMoveNorth,
		"9": ActionMoveNorthEast,
		"6": ActionMoveEast,
		"3": ActionMoveSouthEast,
		"2": ActionMoveSouth,
		"1": ActionMoveSouthWest,
		"4": ActionMoveWest,
		"7": ActionMoveNorthWest,
		"5": ActionWait,

		// WASD
		"w": ActionMoveNorth,
		"a": ActionMoveWest,
		"s": ActionMoveSouth,
		"d": ActionMoveEast,

		// Arrows and words
		"arrow_up":    ActionMoveNorth,
		"arrow_down":  ActionMoveSouth,
		"arrow_left":  ActionMoveWest,
		"arrow_right": ActionMoveEast,
		"north":       ActionMoveNorth,
		"northeast":   ActionMoveNorthEast,
		"east":        ActionMoveEast,
		"southeast":   ActionMoveSouthEast,
		"south":       ActionMoveSouth,
		"southwest":   ActionMoveSouthWest,
		"west":        ActionMoveWest,
		"northwest":   ActionMoveNorthWest,
		"wait":        ActionWait,
		".":           ActionWait,

		// Quit
		"quit":   ActionQuit,
		"q":      ActionQuit,
		"escape": ActionQuit,

		// Developer tools
		"dump": ActionDumpMap,
		"m":    ActionDumpMap,
		"save": ActionSaveProgress,
		"S":    ActionSaveProgress,
	}
}

// ResetBindings restores the built-in bindings.
func ResetBindings() {
	bindings = defaultBindings()
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// actionKeys names each bindable action in config files.
var actionKeys = map[Action]string{
	ActionMoveNorth:     "move_north",
	ActionMoveNorthEast: "move_northeast",
	ActionMoveEast:      "move_east",
	ActionMoveSouthEast: "move_southeast",
	ActionMoveSouth:     "move_south",
	ActionMoveSouthWest: "move_southwest",
	ActionMoveWest:      "move_west",
	ActionMoveNorthWest: "move_northwest",
	ActionWait:          "wait",
	ActionQuit:          "quit",
	ActionDumpMap:       "dump_map",
	ActionSaveProgress:  "save_progress",
}

// ActionKeys returns the config names of every bindable action, sorted.
func ActionKeys() []string {
	return slices.Sorted(maps.Values(actionKeys))
}

// ParseAction looks up an action by its config name, e.g. "move_north".
func ParseAction(key string) (Action, bool) {
	for a, k := range actionKeys {
		if k == key {
			return a, true
		}
	}
	return ActionNone, false
}

// ApplyBindings restores the built-in bindings, then gives each action named
// in overrides the single code it maps to.
func ApplyBindings(overrides map[string]string) error {
	ResetBindings()
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		act, ok := ParseAction(key)
		if !ok {
			return fmt.Errorf("unknown action %q (want one of %v)", key, ActionKeys())
		}
		SetSingleBinding(act, overrides[key])
	}
	return nil
}

// KeyFor returns the shortest code bound to a, or "" if it has none.
func KeyFor(a Action) string {
	codes := GetBindingsByAction()[a]
	if len(codes) == 0 {
		return ""
	}
	best := codes[0]
	for _, c := range codes[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}

// Direction returns the step an action asks for. ActionWait maps to
// world.None; actions that are not moves report false.
func (a Action) Direction() (world.Direction, bool) {
	switch a {
	case ActionMoveNorth:
		return world.North, true
	case ActionMoveNorthEast:
		return world.NorthEast, true
	case ActionMoveEast:
		return world.East, true
	case ActionMoveSouthEast:
		return world.SouthEast, true
	case ActionMoveSouth:
		return world.South, true
	case ActionMoveSouthWest:
		return world.SouthWest, true
	case ActionMoveWest:
		return world.West, true
	case ActionMoveNorthWest:
		return world.NorthWest, true
	case ActionWait:
		return world.None, true
	default:
		return world.None, false
	}
}

// ParseMoves turns a string of single-key codes into a move sequence.
// Whitespace is ignored. Keys bound to non-move actions are an error.
func ParseMoves(keys string) ([]world.Direction, error) {
	var moves []world.Direction
	for i, r := range keys {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		raw := RawInput{Device: DeviceScript, Code: string(r)}
		act := MapToIntent(NewDebouncedInput(raw)).Action
		dir, ok := act.Direction()
		if !ok {
			return nil, fmt.Errorf("key %q at offset %d is not a move", r, i)
		}
		moves = append(moves, dir)
	}
	return moves, nil
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveNorthEast:
		return "Move North-East"
	case ActionMoveEast:
		return "Move East"
	case ActionMoveSouthEast:
		return "Move South-East"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveSouthWest:
		return "Move South-West"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveNorthWest:
		return "Move North-West"
	case ActionWait:
		return "Wait"
	case ActionQuit:
		return "Quit"
	case ActionDumpMap:
		return "Dump Map"
	case ActionSaveProgress:
		return "Save Progress"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering within each action keeps help output deterministic.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
// Arrow keys stay bound to their moves.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if isArrow(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !isArrow(code) {
		bindings[code] = action
	}
}

func isArrow(code string) bool {
	return code == "arrow_up" || code == "arrow_down" || code == "arrow_left" || code == "arrow_right"
}
