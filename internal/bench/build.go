package bench

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrBuildFailed is returned when the release build of the toolkit exits nonzero.
// A build failure is the one unconditional fatal condition: no benchmark is
// meaningful against an unbuilt binary.
var ErrBuildFailed = errors.New("release build failed")

// Builder runs the release build of the FluidAudio toolkit.
type Builder struct {
	log      logrus.FieldLogger
	runner   Runner
	swiftBin string
}

// NewBuilder creates a new release builder.
func NewBuilder(log logrus.FieldLogger, runner Runner, swiftBin string) *Builder {
	return &Builder{
		log:      log.WithField("component", "builder"),
		runner:   runner,
		swiftBin: swiftBin,
	}
}

// BuildRelease compiles the toolkit in optimized mode. The contract with the
// build toolchain is solely its exit status.
func (b *Builder) BuildRelease() error {
	b.log.Info("building release")

	code, out, err := b.runner.Run(b.swiftBin, []string{"build", "-c", "release"}, "")
	if err != nil {
		return fmt.Errorf("running release build: %w", err)
	}

	if code != 0 {
		b.log.WithField("exit_code", code).Error("release build failed")
		b.log.Debug(out)

		return fmt.Errorf("%w: exit status %d", ErrBuildFailed, code)
	}

	b.log.Info("build successful")

	return nil
}
