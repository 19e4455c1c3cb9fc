package media

import "testing"

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30000/1001", 30000.0 / 1001.0},
		{"25/1", 25},
		{"24", 24},
		{"0/0", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := parseFrameRate(tc.in); got != tc.want {
			t.Errorf("parseFrameRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFirstFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"mov,mp4,m4a,3gp,3g2,mj2", "mov"},
		{"avi", "avi"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := firstFormat(tc.in); got != tc.want {
			t.Errorf("firstFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
