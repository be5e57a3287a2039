package world

import (
	"testing"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

func testState() *State {
	return &State{
		Objects: map[string]domain.ObjectDef{
			"a": {Form: domain.FormBrick, Size: domain.SizeLarge, Color: "green"},
			"b": {Form: domain.FormPlank, Size: domain.SizeLarge, Color: "red"},
			"c": {Form: domain.FormBrick, Size: domain.SizeSmall, Color: "white"},
			"d": {Form: domain.FormBox, Size: domain.SizeLarge, Color: "yellow"},
			"e": {Form: domain.FormBall, Size: domain.SizeLarge, Color: "white"},
		},
		Stacks:  [][]string{{"a"}, {"b", "c"}, {"d", "e"}, {}},
		Holding: "",
		Arm:     0,
	}
}

func TestFind(t *testing.T) {
	s := testState()

	tests := []struct {
		id        string
		col, ht   int
		wantFound bool
	}{
		{"a", 0, 0, true},
		{"c", 1, 1, true},
		{"e", 2, 1, true},
		{"floor", 0, 0, false},
		{"z", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			col, ht, ok := s.Find(tt.id)
			if ok != tt.wantFound {
				t.Fatalf("Find(%s) found=%v, want %v", tt.id, ok, tt.wantFound)
			}
			if ok && (col != tt.col || ht != tt.ht) {
				t.Errorf("Find(%s) = (%d,%d), want (%d,%d)", tt.id, col, ht, tt.col, tt.ht)
			}
		})
	}
}

func TestFind_HeldObjectIsAbsent(t *testing.T) {
	s := testState()
	s.Holding = "e"
	s.Stacks[2] = []string{"d"}

	if _, _, ok := s.Find("e"); ok {
		t.Error("a held object must not be found in the stacks")
	}
	if !s.Exists("e") {
		t.Error("a held object still exists in the scene")
	}
}

func TestPickDrop_ShareUnaffectedColumns(t *testing.T) {
	s := testState()
	s.Arm = 2

	picked := s.Pick()
	if picked.Holding != "e" {
		t.Fatalf("Pick: holding = %q, want e", picked.Holding)
	}
	if len(picked.Stacks[2]) != 1 || picked.Stacks[2][0] != "d" {
		t.Fatalf("Pick: column 2 = %v, want [d]", picked.Stacks[2])
	}
	// The parent state is untouched and the other columns are shared.
	if len(s.Stacks[2]) != 2 {
		t.Error("Pick mutated the parent state")
	}
	for i := range s.Stacks {
		if i == 2 || len(s.Stacks[i]) == 0 {
			continue
		}
		if &picked.Stacks[i][0] != &s.Stacks[i][0] {
			t.Errorf("column %d should be shared with the parent", i)
		}
	}

	dropped := picked.WithArm(3).Drop()
	if dropped.Holding != "" {
		t.Errorf("Drop: holding = %q, want empty", dropped.Holding)
	}
	if len(dropped.Stacks[3]) != 1 || dropped.Stacks[3][0] != "e" {
		t.Errorf("Drop: column 3 = %v, want [e]", dropped.Stacks[3])
	}
	if err := dropped.Validate(); err != nil {
		t.Errorf("Validate after pick+drop: %v", err)
	}
}

func TestKey_DistinguishesConfigurations(t *testing.T) {
	s := testState()
	same := testState()
	if s.Key() != same.Key() {
		t.Error("equal configurations must produce equal keys")
	}

	if s.Key() == s.WithArm(1).Key() {
		t.Error("arm position must be part of the key")
	}

	held := testState()
	held.Arm = 2
	if s.WithArm(2).Key() == held.Pick().Key() {
		t.Error("holding must be part of the key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
		wantOK bool
	}{
		{"well-formed", func(s *State) {}, true},
		{"held object", func(s *State) { s.Stacks[2] = []string{"d"}; s.Holding = "e" }, true},
		{"arm out of range", func(s *State) { s.Arm = 4 }, false},
		{"duplicate object", func(s *State) { s.Stacks[3] = []string{"a"} }, false},
		{"unknown object", func(s *State) { s.Stacks[3] = []string{"z"} }, false},
		{"placed floor", func(s *State) { s.Stacks[3] = []string{"floor"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testState()
			tt.mutate(s)
			err := s.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() err = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	s := testState()
	if got, want := s.Describe("e"), "the large white ball"; got != want {
		t.Errorf("Describe(e) = %q, want %q", got, want)
	}
	if got, want := s.Describe(domain.Floor), "the floor"; got != want {
		t.Errorf("Describe(floor) = %q, want %q", got, want)
	}
}
