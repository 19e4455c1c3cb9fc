package worker

import (
	"strings"
	"testing"

	"github.com/streamforge/transcoder/internal/media"
	"github.com/streamforge/transcoder/internal/models"
)

func TestSelectRecipe(t *testing.T) {
	parent := &models.Video{Status: models.StatusOriginal, AudioCodec: "mp3"}
	silentParent := &models.Video{Status: models.StatusOriginal}

	t.Run("flv for flash", func(t *testing.T) {
		enc := &models.Video{Status: models.StatusQueued, Container: "flv", Player: "flash"}
		r := SelectRecipe(enc, parent)
		if r.Name != flvFlashRecipeName {
			t.Fatalf("recipe = %s, want %s", r.Name, flvFlashRecipeName)
		}
		if len(r.Steps) != 2 || !strings.Contains(r.Steps[1], "$flvtool$") {
			t.Errorf("flv recipe should end with a flvtool metadata pass, got %v", r.Steps)
		}
	})

	t.Run("mp4 aac for flash", func(t *testing.T) {
		enc := &models.Video{Status: models.StatusQueued, Container: "mp4", AudioCodec: "aac", Player: "flash"}
		r := SelectRecipe(enc, parent)
		if r.Name != mp4AacFlashRecipeName {
			t.Fatalf("recipe = %s, want %s", r.Name, mp4AacFlashRecipeName)
		}
		if len(r.Steps) != 6 {
			t.Errorf("multistage recipe has %d steps, want 6", len(r.Steps))
		}
		if !strings.Contains(r.Steps[2], "$neroaacenc$") {
			t.Errorf("step 3 should encode audio, got %q", r.Steps[2])
		}
	})

	t.Run("mp4 aac with silent source skips audio stages", func(t *testing.T) {
		enc := &models.Video{Status: models.StatusQueued, Container: "mp4", AudioCodec: "aac", Player: "flash"}
		r := SelectRecipe(enc, silentParent)
		if len(r.Steps) != 1 {
			t.Fatalf("silent variant has %d steps, want 1", len(r.Steps))
		}
		if !strings.Contains(r.Steps[0], "$output_file$") {
			t.Errorf("silent variant should write the output directly, got %q", r.Steps[0])
		}
	})

	t.Run("anything else is generic", func(t *testing.T) {
		enc := &models.Video{Status: models.StatusQueued, Container: "webm", VideoCodec: "libvpx"}
		r := SelectRecipe(enc, parent)
		if r.Name != genericRecipeName {
			t.Fatalf("recipe = %s, want %s", r.Name, genericRecipeName)
		}
	})
}

func TestGenericRecipeSubstitution(t *testing.T) {
	opts := map[string]string{
		"ffmpeg":                 "/usr/bin/ffmpeg",
		"input_file":             "/tmp/in.avi",
		"output_file":            "/tmp/out.webm",
		"container":              "webm",
		"video_codec":            "libvpx",
		"video_bitrate_in_bits":  "512000",
		"audio_codec":            "libvorbis",
		"audio_bitrate":          "64",
		"audio_sample_rate":      "44100",
		"resolution_and_padding": "-s 640x360 -padtop 60 -padbottom 60",
	}
	got := media.SubstituteTemplate(genericRecipe.Steps[0], opts)
	want := "/usr/bin/ffmpeg -i /tmp/in.avi -f webm -vcodec libvpx -b 512000 -ar 44100 -ab 64k -acodec libvorbis -r 24 -s 640x360 -padtop 60 -padbottom 60 -y /tmp/out.webm"
	if got != want {
		t.Errorf("substituted command:\n got %q\nwant %q", got, want)
	}
}
