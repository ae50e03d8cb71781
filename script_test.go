package ultraspin

import (
	"strings"
	"testing"
	"time"
)

func TestLoadScriptRejects(t *testing.T) {
	cases := map[string]string{
		"bad json":       `{"steps": [`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "click"}]}`,
	}
	for name, src := range cases {
		if _, err := LoadScript([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestScriptWaitFramesThenScreenshot(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after-wait"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(64, 64)
	s.SetScript(r)
	for i := 0; i < 3; i++ {
		s.UpdateDelta(0.016)
		if len(s.screenshotQueue) != 0 {
			t.Fatalf("screenshot queued on frame %d", i)
		}
	}
	s.UpdateDelta(0.016)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after-wait" {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("runner should be done after the last step")
	}
}

func TestScriptWaitSeconds(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "seconds": 0.5},
		{"action": "screenshot", "label": "x"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(64, 64)
	s.SetScript(r)
	for i := 0; i < 5; i++ {
		s.UpdateDelta(0.1)
	}
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot before the wait ran out")
	}
	s.UpdateDelta(0.1)
	s.UpdateDelta(0.1)
	if len(s.screenshotQueue) != 1 {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}

func TestScriptIdleWaitsForPlaybacks(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "idle"},
		{"action": "screenshot", "label": "settled"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(64, 64)
	s.SetScript(r)
	n := NewRect("art", 10, 10, ColorWhite)
	s.Root().AddChild(n)
	s.Play(n, fadePlan(0, 300*time.Millisecond))

	s.UpdateDelta(0.1)
	s.UpdateDelta(0.1)
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot while a transition runs")
	}
	for i := 0; i < 5; i++ {
		s.UpdateDelta(0.1)
	}
	if len(s.screenshotQueue) != 1 {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}

func TestSanitizeLabel(t *testing.T) {
	cases := map[string]string{
		"":              "unlabeled",
		"  ":            "unlabeled",
		"fade-in.1":     "fade-in.1",
		"a b/c":         "a_b_c",
		"../etc/passwd": ".._etc_passwd",
	}
	for in, want := range cases {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
	if strings.ContainsRune(sanitizeLabel("ä"), 'ä') {
		t.Error("non-ASCII rune kept")
	}
}

func TestUnpremultiply(t *testing.T) {
	src := []byte{
		255, 0, 0, 255, // opaque
		64, 32, 0, 128, // half alpha
		10, 10, 10, 0, // transparent is left alone
	}
	dst := make([]byte, len(src))
	unpremultiply(dst, src)
	want := []byte{
		255, 0, 0, 255,
		127, 63, 0, 128,
		10, 10, 10, 0,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}
