package analysis

// Frame is a single decoded video frame reduced to its luminance plane.
//
// The Pix slice is owned by the FrameSource that produced the frame and
// is only valid until the next call to Next. Consumers must not retain
// it past the current iteration; the pipeline copies out only the
// reduced scalar.
type Frame struct {
	Width  int
	Height int
	Stride int
	Pix    []uint8
}

// At returns the luminance value at (x, y). Bounds are the caller's
// responsibility.
func (f Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Stride+x]
}

// FrameSource yields decoded frames in presentation order.
//
// A source is forward-only and not restartable once exhausted; a fresh
// open is required to scan the same video again.
type FrameSource interface {
	// Next returns the next frame, or io.EOF once the stream is
	// exhausted. Any other error is a decode failure.
	Next() (Frame, error)

	// FrameCount reports the container's total-frame estimate, 0 when
	// unknown. Some containers misreport this; callers must not treat
	// it as exact.
	FrameCount() int
}
