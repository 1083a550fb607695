package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // Zero value must be usable
	if f.Has(ActionFire) {
		t.Fatal("empty frame reports fire")
	}

	f.Set(ActionFire)
	f.AddClick(14, 6)
	f.AddClick(20, 7)
	if !f.Has(ActionFire) || f.Has(ActionPause) {
		t.Errorf("actions = %v", f.Actions)
	}
	if len(f.Clicks) != 2 || f.Clicks[0] != (Click{X: 14, Y: 6}) {
		t.Errorf("clicks = %v, want arrival order", f.Clicks)
	}

	f.Clear()
	if f.Has(ActionFire) || len(f.Clicks) != 0 {
		t.Error("Clear left input behind")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionFire, "Fire"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
		{Action(-1), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}
