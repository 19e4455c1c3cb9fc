package media

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/streamforge/transcoder/pkg/logger"
)

// Transcoder executes recipe command templates. A recipe is one command per
// line; $name$ placeholders are resolved from the options map before the
// line is split into an argv and exec'd.
type Transcoder struct {
	logger logger.Logger
}

func NewTranscoder(logger logger.Logger) *Transcoder {
	return &Transcoder{logger: logger}
}

func (t *Transcoder) Execute(ctx context.Context, recipe string, opts map[string]string) error {
	for _, line := range strings.Split(recipe, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		command := SubstituteTemplate(line, opts)
		argv := splitCommand(command)
		if len(argv) == 0 {
			continue
		}

		t.logger.Infof("executing: %s", command)
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return errors.Wrapf(err, "%s failed: %s", argv[0], tail(stderr.String(), 2048))
		}
	}
	return nil
}

// SubstituteTemplate resolves $name$ placeholders from opts.
func SubstituteTemplate(template string, opts map[string]string) string {
	out := template
	for key, value := range opts {
		out = strings.ReplaceAll(out, "$"+key+"$", value)
	}
	return out
}

// splitCommand splits a command line into argv, honouring single quoted
// arguments (the x264 rate-control expression contains spaces).
func splitCommand(command string) []string {
	var argv []string
	var current strings.Builder
	inQuote := false
	for _, r := range command {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				argv = append(argv, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		argv = append(argv, current.String())
	}
	return argv
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
