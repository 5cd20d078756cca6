package pdf

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// MuPDFValidator opens documents with MuPDF through go-fitz.
//
// MuPDF rebuilds broken cross-reference tables on open and prints a warning
// to stderr while doing so. A repaired file is not a valid container, so the
// structure is read strictly first and MuPDF only ever sees buffers whose
// xref and trailer are already known to be intact.
type MuPDFValidator struct{}

func NewMuPDFValidator() *MuPDFValidator {
	return &MuPDFValidator{}
}

func (v *MuPDFValidator) Backend() Backend {
	return BackendMuPDF
}

func (v *MuPDFValidator) Open(data []byte) error {
	return safeOpen(BackendMuPDF, data, func(data []byte) error {
		if err := readStructure(data); err != nil {
			return err
		}

		doc, err := fitz.NewFromMemory(data)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		return doc.Close()
	})
}

func (v *MuPDFValidator) IsValid(data []byte) bool {
	return v.Open(data) == nil
}
