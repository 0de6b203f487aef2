package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/driftscroll/internal/engine"
)

type ExportData struct {
	Run     RunMetadata    `json:"run"`
	Samples []ExportSample  `json:"samples"`
}

type ExportSample struct {
	Frame     uint64  `json:"frame"`
	Time      float64 `json:"time"`
	Target    float64 `json:"target"`
	Position  float64 `json:"position"`
	Momentum  float64 `json:"momentum"`
	Progress  float64 `json:"progress"`
	Limit     float64 `json:"limit"`
	Rewinding bool    `json:"rewinding,omitempty"`
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{Run: *meta, Samples: make([]ExportSample, len(samples))}
	for i, smp := range samples {
		data.Samples[i] = ExportSample{
			Frame:     smp.Frame,
			Time:      smp.Time,
			Target:    smp.State.Target,
			Position:  smp.State.Position,
			Momentum:  smp.State.Velocity,
			Progress:  smp.Progress,
			Limit:     smp.State.Limit,
			Rewinding: smp.Rewinding,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (s *Store) ExportCSV(w io.Writer, runID string) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return writeSamples(w, samples)
}

func writeSamples(w io.Writer, samples []engine.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Frame, 10),
			f(smp.Time),
			f(smp.State.Target),
			f(smp.State.Position),
			f(smp.State.Velocity),
			f(smp.Progress),
			f(smp.State.Limit),
			strconv.FormatBool(smp.Rewinding),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
