package driver

import (
	"encoding/json"
	"fmt"

	"gherkin/internal/diag"
	"gherkin/internal/observ"
	"gherkin/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an ObsTimings info entry, growing the bag past
// its limit if needed. The JSON form of the report goes into the note.
func appendTimingDiagnostic(bag *diag.Bag, file *source.File, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{
		Kind:    "tokenize",
		Path:    file.Path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	pos := file.Pos(1, 1)
	entry := diag.New(diag.SevInfo, diag.ObsTimings, pos,
		fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)).
		WithNote(pos, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
