package models

import "testing"

func TestVideoRoles(t *testing.T) {
	cases := []struct {
		status     VideoStatus
		isSource   bool
		isEncoding bool
	}{
		{StatusEmpty, true, false},
		{StatusOriginal, true, false},
		{StatusQueued, false, true},
		{StatusProcessing, false, true},
		{StatusSuccess, false, true},
		{StatusError, false, true},
	}
	for _, tc := range cases {
		v := &Video{Status: tc.status}
		if v.IsSource() != tc.isSource {
			t.Errorf("%s: IsSource() = %v, want %v", tc.status, v.IsSource(), tc.isSource)
		}
		if v.IsEncoding() != tc.isEncoding {
			t.Errorf("%s: IsEncoding() = %v, want %v", tc.status, v.IsEncoding(), tc.isEncoding)
		}
	}
}

func TestBitrateConversions(t *testing.T) {
	v := &Video{VideoBitrate: 500, AudioBitrate: 64}
	if got := v.VideoBitrateInBits(); got != 512000 {
		t.Errorf("VideoBitrateInBits() = %d, want 512000", got)
	}
	if got := v.AudioBitrateInBits(); got != 65536 {
		t.Errorf("AudioBitrateInBits() = %d, want 65536", got)
	}
}

func TestDurationStr(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{61000, "01:01"},
		{3599000, "59:59"},
	}
	for _, tc := range cases {
		v := &Video{Duration: tc.ms}
		if got := v.DurationStr(); got != tc.want {
			t.Errorf("DurationStr(%d) = %s, want %s", tc.ms, got, tc.want)
		}
	}
}

func TestClippingKeys(t *testing.T) {
	v := &Video{VideoID: "abc", Filename: "abc.avi"}

	c := v.Clipping(25)
	if got := c.ScreenshotKey(); got != "abc_25.jpg" {
		t.Errorf("ScreenshotKey() = %s", got)
	}
	if got := c.ThumbnailKey(); got != "abc_25_thumb.jpg" {
		t.Errorf("ThumbnailKey() = %s", got)
	}

	d := v.DefaultClipping()
	if got := d.ScreenshotKey(); got != "abc_screenshot.jpg" {
		t.Errorf("default ScreenshotKey() = %s", got)
	}
	if got := d.ThumbnailKey(); got != "abc_thumbnail.jpg" {
		t.Errorf("default ThumbnailKey() = %s", got)
	}
}

func TestShowResponse(t *testing.T) {
	t.Run("empty slot hides file details", func(t *testing.T) {
		v := &Video{VideoID: "abc", Status: StatusEmpty}
		r := v.ShowResponse()
		if r.ID != "abc" || r.Status != StatusEmpty {
			t.Errorf("response = %+v", r)
		}
		if r.Filename != "" || r.Screenshot != "" {
			t.Errorf("empty slot should expose nothing, got %+v", r)
		}
	})

	t.Run("source exposes the default clipping", func(t *testing.T) {
		v := &Video{VideoID: "abc", Status: StatusOriginal, Filename: "abc.avi", Width: 640, Height: 480}
		r := v.ShowResponse()
		if r.Screenshot != "abc_screenshot.jpg" || r.Thumbnail != "abc_thumbnail.jpg" {
			t.Errorf("clipping keys missing: %+v", r)
		}
	})

	t.Run("encoding exposes its lineage", func(t *testing.T) {
		v := &Video{VideoID: "e1", Status: StatusSuccess, Parent: "abc", Profile: "mp4_hd", EncodingTime: 42}
		r := v.ShowResponse()
		if r.Parent != "abc" || r.Profile != "mp4_hd" || r.EncodingTime != 42 {
			t.Errorf("encoding fields missing: %+v", r)
		}
	})
}
