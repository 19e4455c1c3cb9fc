package media

import (
	"reflect"
	"testing"
)

func TestSubstituteTemplate(t *testing.T) {
	opts := map[string]string{
		"input_file":            "/tmp/in.avi",
		"audio_bitrate":         "64",
		"audio_bitrate_in_bits": "65536",
	}
	got := SubstituteTemplate("ffmpeg -i $input_file$ -ab $audio_bitrate$k -br $audio_bitrate_in_bits$", opts)
	want := "ffmpeg -i /tmp/in.avi -ab 64k -br 65536"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"ffmpeg -i in.avi -y out.flv", []string{"ffmpeg", "-i", "in.avi", "-y", "out.flv"}},
		{"ffmpeg -rc_eq 'blurCplx^(1-qComp)' -qcomp 0.6", []string{"ffmpeg", "-rc_eq", "blurCplx^(1-qComp)", "-qcomp", "0.6"}},
		{"x 'a b c' y", []string{"x", "a b c", "y"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"", nil},
	}
	for _, tc := range cases {
		got := splitCommand(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitCommand(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
