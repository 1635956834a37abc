package build

import (
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// progress is a step counter drawn on stderr. The zero value draws nothing.
type progress struct {
	bar *pb.ProgressBar
}

func newProgress(enabled bool, total int) *progress {
	if !enabled || total == 0 {
		return &progress{}
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &progress{}
	}
	bar := pb.New(total).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}} {{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{etime . }}`,
				),
			),
		).
		SetWriter(os.Stderr).
		SetRefreshRate(time.Second / 10).
		SetMaxWidth(100).
		Start()
	return &progress{bar: bar}
}

func (p *progress) step(name string) {
	if p.bar != nil {
		p.bar.Set("prefix", name)
	}
}

func (p *progress) done() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
