package video

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"roi-analyzer/internal/analysis"
)

// OpenError reports a path that does not resolve to a decodable video
// stream. It occurs before any run starts; the caller may retry with a
// different path.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("opening video %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("opening video %q: no decodable stream", e.Path)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Capture is a forward-only frame source backed by an OpenCV
// VideoCapture. Accepted containers are whatever the linked OpenCV
// build decodes. Frames are read into a pair of Mats that are reused
// across iterations, so each emitted Frame is only valid until the next
// call to Next.
type Capture struct {
	path   string
	vc     *gocv.VideoCapture
	bgr    gocv.Mat
	gray   gocv.Mat
	closed bool
}

var _ analysis.FrameSource = (*Capture)(nil)

// Open opens the video at path for sequential decoding.
func Open(path string) (*Capture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, &OpenError{Path: path}
	}

	return &Capture{
		path: path,
		vc:   vc,
		bgr:  gocv.NewMat(),
		gray: gocv.NewMat(),
	}, nil
}

// Path returns the source file path.
func (c *Capture) Path() string {
	return c.path
}

// FrameCount reports the container's frame count property. Some
// containers misreport it or report 0; it is an estimate only.
func (c *Capture) FrameCount() int {
	n := int(c.vc.Get(gocv.VideoCaptureFrameCount))
	if n < 0 {
		n = 0
	}
	return n
}

// Next decodes the next frame and returns its luminance plane. The
// color-to-gray reduction is OpenCV's fixed BGR2GRAY conversion, the
// same reduction for every frame. Returns io.EOF once the stream is
// exhausted or the capture is closed.
func (c *Capture) Next() (analysis.Frame, error) {
	if c.closed {
		return analysis.Frame{}, io.EOF
	}

	// OpenCV signals end-of-stream and hard decode failures the same
	// way: Read returns false. Either ends the scan.
	if ok := c.vc.Read(&c.bgr); !ok || c.bgr.Empty() {
		return analysis.Frame{}, io.EOF
	}

	if c.bgr.Channels() == 1 {
		c.bgr.CopyTo(&c.gray)
	} else {
		gocv.CvtColor(c.bgr, &c.gray, gocv.ColorBGRToGray)
	}

	pix, err := c.gray.DataPtrUint8()
	if err != nil {
		// Non-continuous Mat; fall back to a copy.
		pix = c.gray.ToBytes()
	}

	return analysis.Frame{
		Width:  c.gray.Cols(),
		Height: c.gray.Rows(),
		Stride: c.gray.Cols(),
		Pix:    pix,
	}, nil
}

// Close releases the decoder and both working Mats. Safe to call more
// than once.
func (c *Capture) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.bgr.Close()
	c.gray.Close()
	return c.vc.Close()
}
