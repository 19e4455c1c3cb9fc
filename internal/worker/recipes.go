package worker

import (
	"strings"

	"github.com/streamforge/transcoder/internal/models"
)

// Recipe is a newline-separated list of command templates run in order.
// Placeholders are filled in from the option map built by the encoder.
type Recipe struct {
	Name  string
	Steps []string
}

func (r Recipe) Template() string {
	return strings.Join(r.Steps, "\n")
}

const flvFlashRecipeName = "flv_flash"
const mp4AacFlashRecipeName = "mp4_aac_flash"
const genericRecipeName = "generic"

var flvFlashRecipe = Recipe{
	Name: flvFlashRecipeName,
	Steps: []string{
		"$ffmpeg$ -i $input_file$ -ar 22050 -ab $audio_bitrate$k -f flv -b $video_bitrate_in_bits$ -r 24 $resolution_and_padding$ -y $output_file$",
		"$flvtool$ -U $output_file$",
	},
}

// H.264 pass shared by both mp4/aac variants. x264 option values containing
// parens must stay single quoted or the shell-style splitter breaks them up.
const x264Pass = "$ffmpeg$ -i $input_file$ -b $video_bitrate_in_bits$ -an -vcodec libx264 -rc_eq 'blurCplx^(1-qComp)' -qcomp 0.6 -qmin 10 -qmax 51 -qdiff 4 -coder 1 -flags +loop -cmp +chroma -partitions +parti4x4+partp8x8+partb8x8 -me hex -subq 5 -me_range 16 -g 250 -keyint_min 25 -sc_threshold 40 -i_qfactor 0.71 $resolution_and_padding$ -r 24 -threads 4 -y "

var mp4AacFlashRecipe = Recipe{
	Name: mp4AacFlashRecipeName,
	Steps: []string{
		x264Pass + "$video_stream_file$",
		"$ffmpeg$ -i $input_file$ -ar 48000 -ac 2 -y $audio_wav_file$",
		"$neroaacenc$ -br $audio_bitrate_in_bits$ -he -if $audio_wav_file$ -of $audio_stream_file$",
		"$mp4box$ -add $video_stream_file$#video $output_file$",
		"$mp4box$ -add $audio_stream_file$#audio $output_file$",
		"$mp4box$ -inter 500 $output_file$",
	},
}

var mp4AacFlashSilentRecipe = Recipe{
	Name: mp4AacFlashRecipeName,
	Steps: []string{
		x264Pass + "$output_file$",
	},
}

var genericRecipe = Recipe{
	Name: genericRecipeName,
	Steps: []string{
		"$ffmpeg$ -i $input_file$ -f $container$ -vcodec $video_codec$ -b $video_bitrate_in_bits$ -ar $audio_sample_rate$ -ab $audio_bitrate$k -acodec $audio_codec$ -r 24 $resolution_and_padding$ -y $output_file$",
	},
}

// SelectRecipe picks the command pipeline for an encoding. The mp4/aac/flash
// combination goes through a multistage x264 + neroAacEnc + MP4Box pipeline;
// a source with no audio track skips the audio and mux stages entirely.
func SelectRecipe(encoding, parent *models.Video) Recipe {
	switch {
	case encoding.Container == "flv" && encoding.Player == "flash":
		return flvFlashRecipe
	case encoding.Container == "mp4" && encoding.AudioCodec == "aac" && encoding.Player == "flash":
		if parent.AudioCodec == "" {
			return mp4AacFlashSilentRecipe
		}
		return mp4AacFlashRecipe
	default:
		return genericRecipe
	}
}
