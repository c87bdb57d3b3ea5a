package analysis

import (
	"context"
	"fmt"
	"io"
	"sync"

	"roi-analyzer/internal/logger"
)

// ProgressFunc receives (framesProcessed, framesTotal) after a batch of
// frames. framesTotal is the container estimate and may be 0 when
// unknown. The sink is advisory: it must not block the scan for long
// and must not touch the live series.
type ProgressFunc func(framesProcessed, framesTotal int)

// ResultFunc receives the final Result of a run. It is invoked exactly
// once per run and is always the last callback the run emits.
type ResultFunc func(Result)

// Result is the immutable outcome of one run. Series is a private copy;
// it is valid for export regardless of how the run ended.
type Result struct {
	Series          Series
	Status          Status
	Err             error
	FramesProcessed int
	FramesTotal     int
}

// Pipeline drives the frame-by-frame ROI scan. At most one run is
// active per instance; the scan itself executes on a dedicated worker
// goroutine so the caller stays responsive. Only the worker mutates the
// series and counters; every externally visible value is a copy.
type Pipeline struct {
	mu              sync.RWMutex
	status          Status
	series          Series
	framesProcessed int
	framesTotal     int

	log           logger.Logger
	progressEvery int
}

const defaultProgressEvery = 10

// NewPipeline creates an idle pipeline. progressEvery controls how many
// frames are processed between progress callbacks; values below 1 fall
// back to the default of 10, matching per-frame cost to callback cost.
func NewPipeline(log logger.Logger, progressEvery int) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	if progressEvery < 1 {
		progressEvery = defaultProgressEvery
	}
	return &Pipeline{
		status:        StatusIdle,
		log:           log,
		progressEvery: progressEvery,
	}
}

// Status returns the current run status.
func (p *Pipeline) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Snapshot returns a copy of the series accumulated so far.
func (p *Pipeline) Snapshot() Series {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.series.Clone()
}

// Progress returns the current frame counters.
func (p *Pipeline) Progress() (framesProcessed, framesTotal int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.framesProcessed, p.framesTotal
}

// Start begins scanning src on a worker goroutine and returns
// immediately. It returns ErrAlreadyRunning while a run is active,
// leaving the live run untouched.
//
// The ROI is validated once, against the first decoded frame. Frame
// dimensions are assumed stable for the rest of the stream; a later
// frame too small to contain the ROI is treated as a decode failure
// rather than read out of bounds. Cancellation via ctx is cooperative
// and observed at iteration boundaries only, so an in-flight frame's
// contribution is never discarded.
func (p *Pipeline) Start(ctx context.Context, src FrameSource, roi Rect, progress ProgressFunc, result ResultFunc) error {
	total := src.FrameCount()
	if total < 0 {
		total = 0
	}

	p.mu.Lock()
	if p.status == StatusRunning {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	p.status = StatusRunning
	p.series = make(Series, 0, total)
	p.framesProcessed = 0
	p.framesTotal = total
	p.mu.Unlock()

	p.log.Info("pipeline", "scan started", map[string]interface{}{
		"roi":          roi.String(),
		"frames_total": total,
	})

	go p.scan(ctx, src, roi, progress, result)
	return nil
}

func (p *Pipeline) scan(ctx context.Context, src FrameSource, roi Rect, progress ProgressFunc, result ResultFunc) {
	validated := false

	for {
		select {
		case <-ctx.Done():
			p.finish(StatusCancelled, nil, progress, result)
			return
		default:
		}

		frame, err := src.Next()
		if err == io.EOF {
			p.finish(StatusCompleted, nil, progress, result)
			return
		}
		if err != nil {
			p.finish(StatusFailed, &DecodeError{FrameIndex: p.processed(), Err: err}, progress, result)
			return
		}

		if !validated {
			if err := roi.Validate(frame.Width, frame.Height); err != nil {
				p.finish(StatusFailed, err, progress, result)
				return
			}
			validated = true
		} else if roi.X+roi.W > frame.Width || roi.Y+roi.H > frame.Height {
			err := &DecodeError{
				FrameIndex: p.processed(),
				Err:        fmt.Errorf("frame shrank to %dx%d, cannot contain ROI %s", frame.Width, frame.Height, roi),
			}
			p.finish(StatusFailed, err, progress, result)
			return
		}

		mean := meanRegion(frame, roi)
		processed := p.append(mean)

		if progress != nil && processed%p.progressEvery == 0 {
			progress(p.Progress())
		}
	}
}

// append records one sample and returns the updated frame counter.
func (p *Pipeline) append(mean float64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.series = append(p.series, Sample{FrameIndex: p.framesProcessed, MeanIntensity: mean})
	p.framesProcessed++
	return p.framesProcessed
}

func (p *Pipeline) processed() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.framesProcessed
}

// finish publishes the terminal state. The final progress callback
// precedes the result callback, which is the last event of the run.
func (p *Pipeline) finish(status Status, err error, progress ProgressFunc, result ResultFunc) {
	p.mu.Lock()
	p.status = status
	snapshot := p.series.Clone()
	processed := p.framesProcessed
	total := p.framesTotal
	p.mu.Unlock()

	if progress != nil {
		progress(processed, total)
	}

	fields := map[string]interface{}{
		"status":           status.String(),
		"frames_processed": processed,
		"frames_total":     total,
	}
	if err != nil {
		p.log.Error("pipeline", err, fields)
	} else {
		p.log.Info("pipeline", "scan finished", fields)
	}

	if result != nil {
		result(Result{
			Series:          snapshot,
			Status:          status,
			Err:             err,
			FramesProcessed: processed,
			FramesTotal:     total,
		})
	}
}

// meanRegion computes the arithmetic mean of the luminance values
// inside the ROI: a raw spatial average, no weighting or normalization.
// The rectangle is known to fit the frame when this is called.
func meanRegion(f Frame, r Rect) float64 {
	var sum uint64
	for y := r.Y; y < r.Y+r.H; y++ {
		row := f.Pix[y*f.Stride+r.X : y*f.Stride+r.X+r.W]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(r.Area())
}
