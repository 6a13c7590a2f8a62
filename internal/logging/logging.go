// Package logging builds the console zap logger used by the command line.
package logging

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by New.
const (
	LevelQuiet  = "quiet"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// New returns a console logger writing to w. quiet keeps errors only,
// normal adds info and warnings, debug adds everything. Unknown levels
// behave like normal.
func New(level string, w io.Writer) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(consoleEnc{zapcore.NewConsoleEncoder(ec)}, zapcore.Lock(zapcore.AddSync(w)), MinLevel(level))
	return zap.New(core).Named("rep2html")
}

// MinLevel maps a level name to the lowest enabled zap level.
func MinLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case LevelQuiet:
		return zapcore.ErrorLevel
	case LevelDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// consoleEnc drops the errorVerbose field zap adds for errors that
// implement fmt.Formatter, such as multierr aggregates.
type consoleEnc struct {
	zapcore.Encoder
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
