// package svmcmd implements the synvm command line tool.
package svmcmd

import (
	"fmt"
	"os"
	"strconv"

	"go.brendoncarroll.net/star"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"synvm.dev/synvm/svmimage"
)

func Root() star.Command {
	return root
}

var root = star.NewDir(star.Metadata{
	Short: "run synvm images",
}, map[star.Symbol]star.Command{
	"run":  runCmd,
	"info": infoCmd,
})

var imageParam = star.Param[svmimage.Image]{
	Name:  "image",
	Parse: svmimage.Load,
}

var inputParam = star.Param[*os.File]{
	Name:     "in",
	Repeated: true,
	Parse:    os.Open,
}

// The optional flags are Repeated, and loaded with LoadOpt, the last value wins.
// Their zero values are the defaults: no step limit, and VerbosityNone.

var maxStepsParam = star.Param[uint64]{
	Name:     "max-steps",
	Repeated: true,
	Parse: func(x string) (uint64, error) {
		return strconv.ParseUint(x, 10, 64)
	},
}

var verbosityParam = star.Param[Verbosity]{
	Name:     "v",
	Repeated: true,
	Parse:    ParseVerbosity,
}

// Verbosity controls how much the run command logs.
type Verbosity int

const (
	// VerbosityNone logs only warnings and errors.
	VerbosityNone Verbosity = iota
	// VerbosityInfo logs every instruction and register write.
	VerbosityInfo
	// VerbosityDebug adds stack and memory traffic, and a report at the end of the run.
	VerbosityDebug
)

func ParseVerbosity(x string) (Verbosity, error) {
	switch x {
	case "none", "":
		return VerbosityNone, nil
	case "info":
		return VerbosityInfo, nil
	case "debug":
		return VerbosityDebug, nil
	default:
		return 0, fmt.Errorf("unknown verbosity %q, want one of none, info, debug", x)
	}
}

func (v Verbosity) String() string {
	switch v {
	case VerbosityInfo:
		return "info"
	case VerbosityDebug:
		return "debug"
	default:
		return "none"
	}
}

// Level is the minimum level logged at v.
func (v Verbosity) Level() zapcore.Level {
	switch v {
	case VerbosityInfo:
		return zapcore.InfoLevel
	case VerbosityDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}

// NewLogger returns a development logger, writing to stderr, at v's level.
func NewLogger(v Verbosity) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(v.Level())
	return cfg.Build()
}
