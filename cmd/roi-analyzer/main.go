package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"roi-analyzer/internal/analysis"
	"roi-analyzer/internal/config"
	"roi-analyzer/internal/export"
	"roi-analyzer/internal/logger"
	"roi-analyzer/internal/shutdown"
	"roi-analyzer/internal/store"
	"roi-analyzer/internal/video"
)

func main() {
	var (
		videoPath = flag.String("video", "", "path to the input video file")
		roiSpec   = flag.String("roi", "", "ROI rectangle as x,y,w,h in source pixels")
		outBase   = flag.String("out", "roi_intensity_data", "output base name for the CSV and PNG files")
		noPlot    = flag.Bool("no-plot", false, "skip the PNG chart export")
		noCatalog = flag.Bool("no-catalog", false, "do not record the run in the catalog")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.NewConsole(logger.ParseLevel(cfg.LogLevel))

	if *videoPath == "" || *roiSpec == "" {
		fmt.Fprintln(os.Stderr, "usage: roi-analyzer -video <file> -roi x,y,w,h [-out base]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	roi, err := parseRect(*roiSpec)
	if err != nil {
		log.Error("main", err, map[string]interface{}{"roi": *roiSpec})
		os.Exit(2)
	}

	capture, err := video.Open(*videoPath)
	if err != nil {
		// An open failure blocks the run entirely; nothing to export.
		log.Error("capture", err, map[string]interface{}{"path": *videoPath})
		os.Exit(1)
	}
	defer capture.Close()

	log.Info("capture", "video opened", map[string]interface{}{
		"path":         *videoPath,
		"frames_total": capture.FrameCount(),
	})

	sm := shutdown.NewManager(context.Background(), log)
	sm.Listen()

	pipe := analysis.NewPipeline(log, cfg.ProgressInterval)
	results := make(chan analysis.Result, 1)

	progress := func(done, total int) {
		log.Info("scan", "progress", map[string]interface{}{
			"frames_processed": done,
			"frames_total":     total,
		})
	}

	if err := pipe.Start(sm.Context(), capture, roi, progress, func(r analysis.Result) {
		results <- r
	}); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}

	res := <-results

	// Export whatever was accumulated; a partial series from a
	// cancelled or failed run is still a valid result.
	if len(res.Series) > 0 || res.Status == analysis.StatusCompleted {
		csvPath := *outBase + ".csv"
		if err := export.SaveCSV(csvPath, res.Series); err != nil {
			log.Error("export", err, map[string]interface{}{"path": csvPath})
		} else {
			log.Info("export", "series written", map[string]interface{}{
				"path":    csvPath,
				"samples": len(res.Series),
			})
		}

		if cfg.PlotExport && !*noPlot && len(res.Series) > 0 {
			plotPath := *outBase + ".png"
			if err := export.SavePlot(plotPath, res.Series); err != nil {
				log.Error("export", err, map[string]interface{}{"path": plotPath})
			} else {
				log.Info("export", "chart written", map[string]interface{}{"path": plotPath})
			}
		}
	}

	if stats, err := res.Series.Stats(); err == nil {
		log.Info("stats", "derived statistics", map[string]interface{}{
			"min":            stats.Min,
			"max":            stats.Max,
			"contrast_ratio": fmt.Sprintf("%.1f%%", stats.ContrastRatio),
		})
	} else {
		log.Warning("stats", "contrast ratio not computed", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	if !*noCatalog {
		recordRun(log, cfg.CatalogPath, *videoPath, roi, res)
	}

	switch res.Status {
	case analysis.StatusFailed:
		os.Exit(1)
	case analysis.StatusCancelled:
		os.Exit(130)
	}
}

func recordRun(log logger.Logger, catalogPath, videoPath string, roi analysis.Rect, res analysis.Result) {
	catalog, err := store.Open(catalogPath)
	if err != nil {
		log.Error("catalog", err, map[string]interface{}{"path": catalogPath})
		return
	}
	defer catalog.Close()

	id, err := catalog.SaveRun(videoPath, roi, res)
	if err != nil {
		log.Error("catalog", err, nil)
		return
	}
	log.Info("catalog", "run recorded", map[string]interface{}{"run_id": id})
}

// parseRect parses "x,y,w,h" into an ROI rectangle. Full validation
// against the frame dimensions happens in the pipeline.
func parseRect(spec string) (analysis.Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return analysis.Rect{}, fmt.Errorf("roi must be x,y,w,h, got %q", spec)
	}

	vals := make([]int, 4)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return analysis.Rect{}, fmt.Errorf("roi component %q is not an integer", part)
		}
		vals[i] = v
	}

	return analysis.Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}
