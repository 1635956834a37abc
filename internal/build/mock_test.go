package build

import (
	"context"
	"errors"
	"maps"

	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
)

// call records one toolchain invocation.
type call struct {
	step string
	cmd  buildsys.Command
	env  map[string]string
}

// fakeToolchain records invocations and fails the steps listed in fail with
// the given exit status.
type fakeToolchain struct {
	calls  []call
	fail   map[string]int
	cancel context.CancelFunc
	// cancelAfter cancels the run once the named step completes.
	cancelAfter string
}

func (f *fakeToolchain) Run(ctx context.Context, step string, cmd buildsys.Command, env map[string]string) (int, error) {
	f.calls = append(f.calls, call{step: step, cmd: cmd, env: maps.Clone(env)})
	if status, ok := f.fail[step]; ok {
		return status, errors.New("exit status")
	}
	if step == f.cancelAfter && f.cancel != nil {
		f.cancel()
	}
	return 0, nil
}

func (f *fakeToolchain) steps() []string {
	names := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		names = append(names, c.step)
	}
	return names
}

// statusOnly exits every step with a fixed status and no error.
type statusOnly int

func (s statusOnly) Run(context.Context, string, buildsys.Command, map[string]string) (int, error) {
	return int(s), nil
}
