package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-analyzer/internal/analysis"
	"roi-analyzer/internal/export"
)

func TestWriteCSV(t *testing.T) {
	series := analysis.Series{
		{FrameIndex: 0, MeanIntensity: 0},
		{FrameIndex: 1, MeanIntensity: 10.5},
		{FrameIndex: 2, MeanIntensity: 127.25},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, series))

	want := "Frame_Number,Magnetic_Field_Step,Mean_ROI_Intensity\n" +
		"0,0,0\n" +
		"1,1,10.5\n" +
		"2,2,127.25\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))
	assert.Equal(t, "Frame_Number,Magnetic_Field_Step,Mean_ROI_Intensity\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	series := analysis.Series{{FrameIndex: 0, MeanIntensity: 42}}

	require.NoError(t, export.SaveCSV(path, series))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0,0,42\n")
}
