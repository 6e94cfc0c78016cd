package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONLines writes one JSON object per line, matching the config package's
// own JSON-forward serialisation convention, for --log-format json.
type JSONLines struct {
	Out io.Writer
	Min Level
	enc *json.Encoder
}

// NewJSONLines returns a JSONLines logger writing to os.Stderr.
func NewJSONLines(verbose bool) *JSONLines {
	min := Info
	if verbose {
		min = Debug
	}

	j := &JSONLines{Out: os.Stderr, Min: min}
	j.enc = json.NewEncoder(j.Out)

	return j
}

func (j *JSONLines) log(level Level, format string, args ...any) {
	if level < j.Min {
		return
	}

	entry := map[string]any{
		"level":   level.String(),
		"message": fmt.Sprintf(format, args...),
	}

	if err := j.enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "logging: failed to encode entry: %v\n", err)
	}
}

func (j *JSONLines) Debugf(format string, args ...any) { j.log(Debug, format, args...) }
func (j *JSONLines) Infof(format string, args ...any)  { j.log(Info, format, args...) }
func (j *JSONLines) Warnf(format string, args ...any)  { j.log(Warn, format, args...) }
func (j *JSONLines) Errorf(format string, args ...any) { j.log(Error, format, args...) }
