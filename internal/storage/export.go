package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/squish/internal/sim"
)

type ExportData struct {
	Preset   string             `json:"preset"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Frames   []ExportFrame      `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

type ExportFrame struct {
	Time      float64        `json:"time"`
	Bodies    [][][2]float64 `json:"bodies"`
	Centroids [][2]float64   `json:"centroids"`
}

func newExportData(preset string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Preset:   preset,
		Dt:       dt,
		Duration: duration,
		Steps:    result.StepsTaken,
		Frames:   make([]ExportFrame, len(result.Frames)),
		Metrics:  result.Metrics,
	}

	for i, f := range result.Frames {
		ef := ExportFrame{
			Time:      f.Time,
			Bodies:    make([][][2]float64, len(f.Positions)),
			Centroids: make([][2]float64, len(f.Centroids)),
		}
		for b, pts := range f.Positions {
			ef.Bodies[b] = make([][2]float64, len(pts))
			for p, v := range pts {
				ef.Bodies[b][p] = [2]float64{v.X, v.Y}
			}
		}
		for b, c := range f.Centroids {
			ef.Centroids[b] = [2]float64{c.X, c.Y}
		}
		data.Frames[i] = ef
	}
	return data
}

func ExportJSON(path string, preset string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, preset, dt, duration, result)
}

func WriteJSON(w io.Writer, preset string, dt, duration float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(preset, dt, duration, result))
}
