package models

import (
	"time"
)

type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
)

const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// CheckResult is the outcome of checking one CLI input. Err is set when the
// content could not be obtained at all; Valid is meaningless in that case.
type CheckResult struct {
	Source   string        `json:"source"`
	Kind     SourceKind    `json:"kind"`
	Valid    bool          `json:"valid"`
	Err      error         `json:"-"`
	Size     int64         `json:"size"`
	SHA256   string        `json:"sha256,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

func (r CheckResult) Status() string {
	switch {
	case r.Err != nil:
		return StatusError
	case r.Valid:
		return StatusValid
	default:
		return StatusInvalid
	}
}
