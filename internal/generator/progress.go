package generator

import (
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progress is a byte-based terminal progress bar for a batch run.
// The zero-ish value returned for disabled runs makes every method a no-op.
type progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgress(enabled bool, total int64) *progress {
	if !enabled || total <= 0 {
		return &progress{}
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
	bar := p.AddBar(total,
		mpb.PrependDecorators(
			decor.Name("generating: "),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO), "done"),
		),
	)

	return &progress{p: p, bar: bar}
}

// update moves the bar to the number of input bytes consumed so far.
func (pr *progress) update(bytesRead int64) {
	if pr.bar != nil {
		pr.bar.SetCurrent(bytesRead)
	}
}

// finish completes the bar and waits for it to flush.
func (pr *progress) finish() {
	if pr.p == nil {
		return
	}
	pr.bar.SetTotal(-1, true)
	pr.p.Wait()
}
