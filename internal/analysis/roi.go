package analysis

import "fmt"

// Rect is a region of interest in source-frame pixel coordinates.
// It is created once by the ROI-selection collaborator and never
// mutated by the pipeline.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Validate checks the rectangle against the frame dimensions it will be
// cropped from.
func (r Rect) Validate(frameWidth, frameHeight int) error {
	switch {
	case r.W <= 0 || r.H <= 0:
		return &RoiError{Rect: r, FrameWidth: frameWidth, FrameHeight: frameHeight,
			Reason: "width and height must be positive"}
	case r.X < 0 || r.Y < 0:
		return &RoiError{Rect: r, FrameWidth: frameWidth, FrameHeight: frameHeight,
			Reason: "origin must not be negative"}
	case r.X+r.W > frameWidth || r.Y+r.H > frameHeight:
		return &RoiError{Rect: r, FrameWidth: frameWidth, FrameHeight: frameHeight,
			Reason: "rectangle extends past the frame"}
	}
	return nil
}

// Area returns the number of pixels covered by the rectangle.
func (r Rect) Area() int {
	return r.W * r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

// RoiError reports a region of interest that does not fit the video's
// frame dimensions. It is raised before the scan loop begins, so no
// partial series exists when it occurs.
type RoiError struct {
	Rect        Rect
	FrameWidth  int
	FrameHeight int
	Reason      string
}

func (e *RoiError) Error() string {
	return fmt.Sprintf("invalid ROI %s for %dx%d frame: %s",
		e.Rect, e.FrameWidth, e.FrameHeight, e.Reason)
}
