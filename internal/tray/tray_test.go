package tray

import "testing"

func TestStatus_Title(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"not started", Status{State: "not-started"}, "🦖 Dino Jump"},
		{"running", Status{State: "running", ScoreText: "00042", HighText: "00100"}, "🦖 00042"},
		{"over", Status{State: "over", ScoreText: "00042", HighText: "00100"}, "🦖 00042 (HI 00100)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTray_Toggle(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Fatal("new tray should start enabled")
	}

	var got []bool
	tr.OnToggle(func(enabled bool) { got = append(got, enabled) })

	// The menu is not built outside Run, so only state and callbacks change.
	tr.handleToggle()
	tr.handleToggle()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("toggle callbacks = %v, want [false true]", got)
	}
	if !tr.IsEnabled() {
		t.Error("expected enabled after two toggles")
	}

	tr.SetEnabled(false)
	if tr.IsEnabled() {
		t.Error("SetEnabled(false) not applied")
	}
}

func TestTray_Callbacks(t *testing.T) {
	tr := New()

	var newGames, dashboards int
	tr.OnNewGame(func() { newGames++ })
	tr.OnDashboard(func() { dashboards++ })

	tr.handleNewGame()
	tr.handleDashboard()
	tr.handleDashboard()

	if newGames != 1 || dashboards != 2 {
		t.Errorf("newGames=%d dashboards=%d, want 1 and 2", newGames, dashboards)
	}
}

func TestTray_SetStatus(t *testing.T) {
	tr := New()
	s := Status{State: "running", ScoreText: "00001", HighText: "00000"}

	if !tr.SetStatus(s) {
		t.Error("first status should be a change")
	}
	if tr.SetStatus(s) {
		t.Error("same status should not be a change")
	}
	if got := scoreLabel(s); got != "Score: 00001  HI 00000" {
		t.Errorf("scoreLabel() = %q", got)
	}
}
