package input

import (
	"errors"
	"io"
	"strings"
	"testing"

	"roguecore/pkg/engine/world"
)

func actionFor(code string) Action {
	return MapToIntent(NewDebouncedInput(RawInput{Device: DeviceTerminal, Code: code})).Action
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		keys string
		want []world.Direction
	}{
		{"", nil},
		{"hjkl", []world.Direction{world.West, world.South, world.North, world.East}},
		{"yubn", []world.Direction{world.NorthWest, world.NorthEast, world.SouthWest, world.SouthEast}},
		{"8 6 5", []world.Direction{world.North, world.East, world.None}},
		{"wasd", []world.Direction{world.North, world.West, world.South, world.East}},
		{"1379", []world.Direction{world.SouthWest, world.SouthEast, world.NorthWest, world.NorthEast}},
		{"l.\nl", []world.Direction{world.East, world.None, world.East}},
	}

	for _, tt := range tests {
		got, err := ParseMoves(tt.keys)
		if err != nil {
			t.Errorf("ParseMoves(%q) error = %v", tt.keys, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseMoves(%q) = %v, want %v", tt.keys, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseMoves(%q)[%d] = %v, want %v", tt.keys, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseMoves_Invalid(t *testing.T) {
	for _, keys := range []string{"hz", "q", "l?"} {
		if _, err := ParseMoves(keys); err == nil {
			t.Errorf("ParseMoves(%q) error = nil, want error", keys)
		}
	}
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"north", ActionMoveNorth},
		{"arrow_left", ActionMoveWest},
		{"southeast", ActionMoveSouthEast},
		{"wait", ActionWait},
		{"q", ActionQuit},
		{"dump", ActionDumpMap},
		{"xyzzy", ActionNone},
	}
	for _, tt := range tests {
		if got := actionFor(tt.code); got != tt.want {
			t.Errorf("actionFor(%q) = %v, want %v", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestActionDirection(t *testing.T) {
	for _, a := range []Action{ActionQuit, ActionDumpMap, ActionNone} {
		if _, ok := a.Direction(); ok {
			t.Errorf("%s.Direction() ok = true, want false", ActionName(a))
		}
	}
	if d, ok := ActionWait.Direction(); !ok || d != world.None {
		t.Errorf("ActionWait.Direction() = %v, %v; want None, true", d, ok)
	}
}

func TestEveryDirectionHasAVIKey(t *testing.T) {
	seen := map[world.Direction]bool{}
	for _, r := range "hjklyubn" {
		d, ok := actionFor(string(r)).Direction()
		if !ok {
			t.Fatalf("vi key %q is not a move", r)
		}
		seen[d] = true
	}
	for _, d := range world.AllDirections() {
		if !seen[d] {
			t.Errorf("no vi key moves %v", d)
		}
	}
}

func TestSetSingleBinding(t *testing.T) {
	defer ResetBindings()

	SetSingleBinding(ActionMoveNorth, "i")
	if got := actionFor("i"); got != ActionMoveNorth {
		t.Errorf("actionFor(i) = %v, want Move North", ActionName(got))
	}
	if got := actionFor("k"); got != ActionNone {
		t.Errorf("actionFor(k) after rebinding = %v, want None", ActionName(got))
	}
	if got := actionFor("arrow_up"); got != ActionMoveNorth {
		t.Errorf("arrow_up lost its binding, got %v", ActionName(got))
	}

	SetSingleBinding(ActionQuit, "arrow_up")
	if got := actionFor("arrow_up"); got != ActionMoveNorth {
		t.Errorf("arrow_up rebound to %v, want Move North", ActionName(got))
	}
}

func TestGetBindingsByAction(t *testing.T) {
	byAction := GetBindingsByAction()
	codes := byAction[ActionMoveWest]
	want := []string{"4", "a", "arrow_left", "h", "west"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Errorf("bindings for Move West = %v, want %v", codes, want)
	}
}

func TestApplyBindings(t *testing.T) {
	defer ResetBindings()

	err := ApplyBindings(map[string]string{"quit": "x", "dump_map": "M"})
	if err != nil {
		t.Fatalf("ApplyBindings() error = %v", err)
	}
	if got := actionFor("x"); got != ActionQuit {
		t.Errorf("actionFor(x) = %v, want Quit", ActionName(got))
	}
	if got := actionFor("q"); got != ActionNone {
		t.Errorf("actionFor(q) after rebinding = %v, want None", ActionName(got))
	}
	if got, want := KeyFor(ActionDumpMap), "M"; got != want {
		t.Errorf("KeyFor(Dump Map) = %q, want %q", got, want)
	}

	// A second call starts again from the built-in bindings.
	if err := ApplyBindings(nil); err != nil {
		t.Fatalf("ApplyBindings(nil) error = %v", err)
	}
	if got := actionFor("q"); got != ActionQuit {
		t.Errorf("actionFor(q) after reset = %v, want Quit", ActionName(got))
	}
	if got := actionFor("x"); got != ActionNone {
		t.Errorf("actionFor(x) after reset = %v, want None", ActionName(got))
	}
}

func TestApplyBindings_UnknownAction(t *testing.T) {
	defer ResetBindings()
	if err := ApplyBindings(map[string]string{"jump": "J"}); err == nil {
		t.Error("ApplyBindings(jump) error = nil, want error")
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionQuit, "q"},
		{ActionDumpMap, "m"},
		{ActionSaveProgress, "S"},
		{ActionMoveWest, "4"},
		{ActionNone, ""},
	}
	for _, tt := range tests {
		if got := KeyFor(tt.action); got != tt.want {
			t.Errorf("KeyFor(%v) = %q, want %q", ActionName(tt.action), got, tt.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, key := range ActionKeys() {
		act, ok := ParseAction(key)
		if !ok || act == ActionNone {
			t.Errorf("ParseAction(%q) = %v, %v", key, ActionName(act), ok)
		}
	}
	if _, ok := ParseAction("fly"); ok {
		t.Error("ParseAction(fly) ok = true, want false")
	}
}

func TestKeyReader(t *testing.T) {
	k := NewKeyReader(strings.NewReader("h\r\n\x1b[A\x1bOCl"))
	want := []string{"h", "arrow_up", "arrow_right", "l"}
	for i, w := range want {
		got, err := k.ReadCode()
		if err != nil {
			t.Fatalf("ReadCode() #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("ReadCode() #%d = %q, want %q", i, got, w)
		}
	}
	if _, err := k.ReadCode(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadCode() at end error = %v, want io.EOF", err)
	}
}

func TestKeyReader_Interrupt(t *testing.T) {
	k := NewKeyReader(strings.NewReader("\x03"))
	if _, err := k.ReadCode(); !errors.Is(err, ErrInterrupted) {
		t.Errorf("ReadCode() error = %v, want ErrInterrupted", err)
	}
}

func TestKeyReader_LoneEscape(t *testing.T) {
	k := NewKeyReader(strings.NewReader("\x1b"))
	got, err := k.ReadCode()
	if err != nil {
		t.Fatalf("ReadCode() error = %v", err)
	}
	if got != "escape" {
		t.Errorf("ReadCode() = %q, want %q", got, "escape")
	}
}
