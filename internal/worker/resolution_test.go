package worker

import "testing"

func TestResolutionAndPadding(t *testing.T) {
	cases := []struct {
		name                 string
		inW, inH, outW, outH int
		want                 string
	}{
		{"wide source letterboxed", 1920, 1080, 640, 480, "-s 640x360 -padtop 60 -padbottom 60"},
		{"tall source cropped", 640, 480, 640, 360, "-s 640x480 -croptop 60 -cropbottom 60"},
		{"exact fit", 1280, 720, 640, 360, "-s 640x360"},
		{"odd height rounded down", 1920, 1080, 500, 300, "-s 500x280 -padtop 10 -padbottom 10"},
		{"unknown source height", 640, 0, 640, 480, "-s 640x480"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolutionAndPadding(tc.inW, tc.inH, tc.outW, tc.outH)
			if got != tc.want {
				t.Errorf("ResolutionAndPadding(%d, %d, %d, %d) = %q, want %q",
					tc.inW, tc.inH, tc.outW, tc.outH, got, tc.want)
			}
		})
	}
}

func TestResolutionAndPaddingNoCropping(t *testing.T) {
	cases := []struct {
		name                 string
		inW, inH, outW, outH int
		want                 string
		wantWidth            int
	}{
		{"wide source letterboxed", 1920, 1080, 640, 480, "-s 640x360 -padtop 60 -padbottom 60", 640},
		{"tall source narrowed", 480, 640, 640, 480, "-s 360x480", 360},
		{"exact fit", 1280, 720, 640, 360, "-s 640x360", 640},
		{"unknown source height", 640, 0, 640, 480, "-s 640x480", 640},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, width := ResolutionAndPaddingNoCropping(tc.inW, tc.inH, tc.outW, tc.outH)
			if got != tc.want {
				t.Errorf("ResolutionAndPaddingNoCropping(%d, %d, %d, %d) = %q, want %q",
					tc.inW, tc.inH, tc.outW, tc.outH, got, tc.want)
			}
			if width != tc.wantWidth {
				t.Errorf("width = %d, want %d", width, tc.wantWidth)
			}
		})
	}
}
