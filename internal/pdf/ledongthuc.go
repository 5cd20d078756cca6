package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// LedongthucValidator uses the pure Go reader from github.com/ledongthuc/pdf.
// It needs no cgo and is strict about the trailer and startxref offset.
type LedongthucValidator struct{}

func NewLedongthucValidator() *LedongthucValidator {
	return &LedongthucValidator{}
}

func (v *LedongthucValidator) Backend() Backend {
	return BackendLedongthuc
}

func (v *LedongthucValidator) Open(data []byte) error {
	return safeOpen(BackendLedongthuc, data, readStructure)
}

func (v *LedongthucValidator) IsValid(data []byte) bool {
	return v.Open(data) == nil
}

// readStructure requires %%EOF, a startxref that points at a readable xref
// section, and a trailer whose Root resolves to a catalog with a page tree.
// It never repairs. A failed object lookup inside the reader panics, which
// safeOpen turns into an error.
func readStructure(data []byte) error {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}

	root := r.Trailer().Key("Root")
	if root.Kind() != pdf.Dict {
		return errors.New("failed to open PDF: trailer has no Root catalog")
	}
	if root.Key("Pages").Kind() != pdf.Dict {
		return errors.New("failed to open PDF: catalog has no page tree")
	}
	return nil
}
