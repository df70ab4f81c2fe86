package ui

import "testing"

func TestDisplayRoomName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"living_room", "Living Room"},
		{"master_bedroom", "Master Bedroom"},
		{"kitchen", "Kitchen"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DisplayRoomName(tc.in); got != tc.want {
			t.Errorf("DisplayRoomName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("x", 0); got != "" {
		t.Errorf("got %q", got)
	}
}
