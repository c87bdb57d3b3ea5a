package analysis

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning is returned by Start when a scan is still active on
// this pipeline instance. The live run is left untouched.
var ErrAlreadyRunning = errors.New("a scan is already running on this pipeline")

// DecodeError reports a frame that failed to decode mid-scan. The run
// terminates as Failed; everything accumulated before the failure stays
// in the series and remains exportable.
type DecodeError struct {
	FrameIndex int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding frame %d: %v", e.FrameIndex, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
