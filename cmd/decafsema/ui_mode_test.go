package main

import "testing"

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{
		"":     uiModeAuto,
		"auto": uiModeAuto,
		"AUTO": uiModeAuto,
		"on":   uiModeOn,
		"ON":   uiModeOn,
		"off":  uiModeOff,
	}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil {
			t.Fatalf("readUIMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("readUIMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := readUIMode("bogus"); err == nil {
		t.Fatalf("expected an error for an invalid --ui value")
	}
}

func TestShouldUseTUIOnAndOffBypassTTYDetection(t *testing.T) {
	if !shouldUseTUI(uiModeOn) {
		t.Fatalf("uiModeOn should always resolve to true")
	}
	if shouldUseTUI(uiModeOff) {
		t.Fatalf("uiModeOff should always resolve to false")
	}
}
