package svmcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"

	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/maps"

	"synvm.dev/synvm/svm"
	"synvm.dev/synvm/svmimage"
)

var runCmd = star.Command{
	Metadata: star.Metadata{
		Short: "run an image, connected to stdin and stdout",
	},
	Flags: []star.IParam{verbosityParam, inputParam, maxStepsParam},
	Pos:   []star.IParam{imageParam},
	F: func(c star.Context) error {
		verbosity, _ := verbosityParam.LoadOpt(c)
		maxSteps, _ := maxStepsParam.LoadOpt(c)
		l, err := NewLogger(verbosity)
		if err != nil {
			return err
		}
		defer l.Sync()
		ctx := logctx.NewContext(c.Context, l)

		// --in files are consumed in order before stdin
		var inputs []io.Reader
		for _, f := range inputParam.LoadAll(c) {
			defer f.Close()
			inputs = append(inputs, f)
		}
		inputs = append(inputs, c.StdIn)

		return Exec(ctx, l, imageParam.Load(c), ExecParams{
			Input:    io.MultiReader(inputs...),
			Output:   flushWriter{c.StdOut},
			MaxSteps: maxSteps,
		})
	},
}

// flushWriter flushes after every write, so output is visible while the
// machine waits for input.
type flushWriter struct {
	w *bufio.Writer
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, fw.w.Flush()
}

type ExecParams struct {
	Input  io.Reader
	Output io.Writer
	// MaxSteps limits the number of instructions executed, 0 is unlimited.
	MaxSteps uint64
}

// Exec runs img until it halts and returns the fault that stopped it, if any.
// Instructions are traced to l if it is enabled for info.
func Exec(ctx context.Context, l *zap.Logger, img svmimage.Image, params ExecParams) error {
	opts := []svm.Option{
		svm.WithInput(svm.NewReaderSource(params.Input)),
		svm.WithOutput(params.Output),
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		opts = append(opts, svm.WithHooks(svm.LogHooks(l)))
	}
	id := img.ID()
	logctx.Info(ctx, "loaded image", zap.String("id", id.Short()), zap.Int("words", img.Words()))
	vm := svm.New(img, opts...)

	var err error
	if params.MaxSteps > 0 {
		vm.Run(ctx, params.MaxSteps)
		if err = vm.Err(); err == nil && !vm.Halted() {
			if err = ctx.Err(); err == nil {
				err = fmt.Errorf("step limit of %d reached at pc=%d", params.MaxSteps, vm.PC())
			}
		}
	} else {
		err = vm.Exec(ctx)
	}
	logctx.Infof(ctx, "vm ran for %d steps", vm.Steps())
	report(ctx, vm)
	if err != nil {
		logctx.Error(ctx, "vm stopped", zap.String("id", id.Short()), zap.Error(err))
	}
	return err
}

// report logs the opcode histogram and the tail of the output at debug.
func report(ctx context.Context, vm *svm.VM) {
	counts := vm.OpCounts()
	ops := maps.Keys(counts)
	slices.Sort(ops)
	for _, op := range ops {
		logctx.Debug(ctx, "opcode", zap.Stringer("op", op), zap.Uint64("count", counts[op]))
	}
	logctx.Debug(ctx, "transcript", zap.String("output", vm.Console().Transcript()))
}
