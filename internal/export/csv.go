package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"roi-analyzer/internal/analysis"
)

// The field step column mirrors the frame number: one magnetic field
// step per frame.
var csvHeader = []string{"Frame_Number", "Magnetic_Field_Step", "Mean_ROI_Intensity"}

// WriteCSV serializes the series as one row per sample. Partial series
// from cancelled or failed runs are written the same way as complete
// ones.
func WriteCSV(w io.Writer, series analysis.Series) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range series {
		idx := strconv.Itoa(s.FrameIndex)
		record := []string{idx, idx, strconv.FormatFloat(s.MeanIntensity, 'f', -1, 64)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing frame %d: %w", s.FrameIndex, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to a file at path.
func SaveCSV(path string, series analysis.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteCSV(f, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
