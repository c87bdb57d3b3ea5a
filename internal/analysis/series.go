package analysis

import "errors"

// Sample is one entry of the intensity series: the spatial mean of the
// ROI's luminance for a single frame.
type Sample struct {
	FrameIndex    int
	MeanIntensity float64
}

// Series is the ordered per-frame record of ROI mean luminance, with
// strictly increasing frame indices starting at 0. It is append-only
// while a run is active and immutable once the run ends.
type Series []Sample

// Clone returns an independent copy of the series.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

var (
	// ErrNoData is returned when statistics are requested for an empty
	// series.
	ErrNoData = errors.New("series has no samples")

	// ErrZeroMinimum is returned when the series minimum is zero and
	// the contrast ratio is therefore undefined.
	ErrZeroMinimum = errors.New("series minimum is zero, contrast ratio undefined")
)

// Stats holds derived statistics over a completed series.
type Stats struct {
	Min           float64
	Max           float64
	ContrastRatio float64
}

// Stats computes min, max and the contrast ratio
// (max-min)/min*100 over the series. It is a pure function of the
// finished series, never maintained incrementally during a scan.
func (s Series) Stats() (Stats, error) {
	if len(s) == 0 {
		return Stats{}, ErrNoData
	}

	min := s[0].MeanIntensity
	max := s[0].MeanIntensity
	for _, sample := range s[1:] {
		if sample.MeanIntensity < min {
			min = sample.MeanIntensity
		}
		if sample.MeanIntensity > max {
			max = sample.MeanIntensity
		}
	}

	if min == 0 {
		return Stats{}, ErrZeroMinimum
	}

	return Stats{
		Min:           min,
		Max:           max,
		ContrastRatio: (max - min) / min * 100,
	}, nil
}
