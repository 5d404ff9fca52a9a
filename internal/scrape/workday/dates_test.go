package workday

import (
	"testing"
	"time"
)

func TestParsePostedOn(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want *time.Time
	}{
		{"Posted Today", ptr(now)},
		{"posted today", ptr(now)},
		{"Posted Yesterday", ptr(now.AddDate(0, 0, -1))},
		{"Posted 3 Days Ago", ptr(now.AddDate(0, 0, -3))},
		{"Posted 30+ Days Ago", ptr(now.AddDate(0, 0, -30))},
		{"POSTED 1 DAY AGO", ptr(now.AddDate(0, 0, -1))},
		{"", nil},
		{"who knows", nil},
	}
	for _, c := range cases {
		got := parsePostedOn(c.in, now)
		switch {
		case c.want == nil && got != nil:
			t.Errorf("parsePostedOn(%q) = %v, want nil", c.in, got)
		case c.want != nil && got == nil:
			t.Errorf("parsePostedOn(%q) = nil, want %v", c.in, *c.want)
		case c.want != nil && got != nil && !got.Equal(*c.want):
			t.Errorf("parsePostedOn(%q) = %v, want %v", c.in, *got, *c.want)
		}
	}
}

func TestJobRef_FallbackToRawPath(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"/job/Austin-TX/Engineer_JR-1", "Engineer_JR-1"},
		{"/job/Engineer_JR-2", "Engineer_JR-2"},
		// no /job/ segment: raw path, folded into a key-safe token
		{"/careers/open/12345", "careers-open-12345"},
		{"", ""},
	}
	for _, c := range cases {
		if got := jobRef(c.path); got != c.want {
			t.Errorf("jobRef(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
