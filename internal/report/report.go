package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kpauljoseph/pdfcheck/pkg/logger"
	"github.com/kpauljoseph/pdfcheck/pkg/models"
	"github.com/kpauljoseph/pdfcheck/pkg/pdfcheck"
	"github.com/kpauljoseph/pdfcheck/pkg/utils"
)

// Exit codes returned by the CLI.
const (
	ExitAllValid   = 0
	ExitSomeFailed = 1
	ExitErrors     = 2
	ExitUsage      = 3
)

type Report struct {
	StartTime time.Time
	EndTime   time.Time
	Results   []models.CheckResult
}

func New() *Report {
	return &Report{StartTime: time.Now()}
}

func (r *Report) Add(result models.CheckResult) {
	r.Results = append(r.Results, result)
}

func (r *Report) Finish() {
	r.EndTime = time.Now()
}

func (r *Report) Count(status string) int {
	n := 0
	for _, res := range r.Results {
		if res.Status() == status {
			n++
		}
	}
	return n
}

// ExitCode is ExitErrors if any input could not be read or fetched,
// ExitSomeFailed if any input was not a PDF, and ExitAllValid otherwise.
func (r *Report) ExitCode() int {
	switch {
	case r.Count(models.StatusError) > 0:
		return ExitErrors
	case r.Count(models.StatusInvalid) > 0:
		return ExitSomeFailed
	}
	return ExitAllValid
}

// Render writes one table row per result.
func (r *Report) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source", "Kind", "Status", "Size", "SHA256", "Detail"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, res := range r.Results {
		size, hash := "-", "-"
		if res.Err == nil {
			size = utils.HumanSize(res.Size)
			hash = utils.ShortHash(res.SHA256)
		}
		table.Append([]string{
			res.Source,
			string(res.Kind),
			strings.ToUpper(res.Status()),
			size,
			hash,
			detail(res.Err),
		})
	}

	table.Render()
}

type jsonResult struct {
	models.CheckResult
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// WriteJSON writes the results as an indented JSON array, one object per
// input, in the order they were added.
func (r *Report) WriteJSON(w io.Writer) error {
	out := make([]jsonResult, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, jsonResult{
			CheckResult: res,
			Status:      res.Status(),
			Error:       detail(res.Err),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// detail prefers the cause over the InvalidURLError message, which only
// repeats the URL already shown in the Source column.
func detail(err error) string {
	if err == nil {
		return ""
	}
	var urlErr *pdfcheck.InvalidURLError
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func (r *Report) Print(log *logger.Logger) {
	duration := r.EndTime.Sub(r.StartTime)
	log.Info("Checked %d inputs in %v", len(r.Results), duration.Round(time.Millisecond))
	log.Info("- Valid PDFs:   %d", r.Count(models.StatusValid))
	log.Info("- Not a PDF:    %d", r.Count(models.StatusInvalid))
	log.Info("- Unreachable:  %d", r.Count(models.StatusError))
}
