// report.go — final result report, encoded with sugawarayuuta/sonnet
// instead of encoding/json: a drop-in faster decoder/encoder on the one
// path in this binary that actually marshals JSON.

package main

import "github.com/sugawarayuuta/sonnet"

// Sample is one scheduled observation of the running domain's state,
// collected by the event scheduler in schedule.go.
type Sample struct {
	AtSeconds float64          `json:"at_seconds"`
	LiveNodes map[string]int64 `json:"live_nodes"`
}

// Report is the complete output of one ebrbench run.
type Report struct {
	Structure         Structure `json:"structure"`
	UpdateThreshold   uint32    `json:"update_threshold"`
	Workers           int       `json:"workers"`
	Duration          string    `json:"duration"`
	TotalOps          int64     `json:"total_ops"`
	DroppedLogRecords int64     `json:"dropped_log_records"`
	DoubleRetireHits  int64     `json:"double_retire_hits"`
	Samples           []Sample  `json:"samples"`
}

// Encode renders the report as indented JSON.
func (r Report) Encode() ([]byte, error) {
	return sonnet.MarshalIndent(r, "", "  ")
}

func newReport(cfg Config, totalOps, dropped, doubleRetire int64, samples []Sample) Report {
	return Report{
		Structure:         cfg.Structure,
		UpdateThreshold:   cfg.UpdateThreshold,
		Workers:           cfg.Workers,
		Duration:          cfg.Duration().String(),
		TotalOps:          totalOps,
		DroppedLogRecords: dropped,
		DoubleRetireHits:  doubleRetire,
		Samples:           samples,
	}
}
