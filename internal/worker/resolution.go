package worker

import "fmt"

// The planner fits the source aspect ratio into the profile's target frame.
// Codecs reject odd dimensions, so every computed height, width, crop and
// pad is rounded down to even.

// ResolutionAndPadding is the crop policy: source too tall for the target
// frame gets its top and bottom cropped, too wide gets letterboxed.
func ResolutionAndPadding(inW, inH, outW, outH int) string {
	if inW == 0 || inH == 0 {
		return fmt.Sprintf("-s %dx%d", outW, outH)
	}

	aspect := float64(inW) / float64(inH)
	height := even(int(float64(outW) / aspect))

	opts := fmt.Sprintf("-s %dx%d", outW, height)
	if height > outH {
		crop := even((height - outH) / 2)
		opts += fmt.Sprintf(" -croptop %d -cropbottom %d", crop, crop)
	} else if height < outH {
		pad := even((outH - height) / 2)
		opts += fmt.Sprintf(" -padtop %d -padbottom %d", pad, pad)
	}
	return opts
}

// ResolutionAndPaddingNoCropping preserves the full source picture: a source
// too tall for the target frame is narrowed instead of cropped, too wide is
// letterboxed. The returned width is the output width actually used; it
// differs from outW only when the narrowing branch fired, and the caller is
// expected to persist it on the encoding.
func ResolutionAndPaddingNoCropping(inW, inH, outW, outH int) (string, int) {
	if inW == 0 || inH == 0 {
		return fmt.Sprintf("-s %dx%d", outW, outH), outW
	}

	aspect := float64(inW) / float64(inH)
	aspectInv := float64(inH) / float64(inW)
	height := even(int(float64(outW) / aspect))

	if height > outH {
		width := even(int(float64(outH) / aspectInv))
		return fmt.Sprintf("-s %dx%d", width, outH), width
	}

	opts := fmt.Sprintf("-s %dx%d", outW, height)
	if height < outH {
		pad := even((outH - height) / 2)
		opts += fmt.Sprintf(" -padtop %d -padbottom %d", pad, pad)
	}
	return opts, outW
}

func even(n int) int {
	if n%2 == 1 {
		return n - 1
	}
	return n
}
