package pdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// PDFCPUValidator reads the cross-reference table and dereferences its
// objects with pdfcpu. Content streams are not validated.
type PDFCPUValidator struct{}

func NewPDFCPUValidator() *PDFCPUValidator {
	// pdfcpu would otherwise create a config directory under the user's
	// home on first use.
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFCPUValidator{}
}

// configuration is built per call; pdfcpu writes into it while reading.
func (v *PDFCPUValidator) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (v *PDFCPUValidator) Backend() Backend {
	return BackendPDFCPU
}

func (v *PDFCPUValidator) Open(data []byte) error {
	return safeOpen(BackendPDFCPU, data, func(data []byte) error {
		ctx, err := api.ReadContext(bytes.NewReader(data), v.configuration())
		if err != nil {
			return fmt.Errorf("failed to read PDF: %w", err)
		}
		if ctx.XRefTable == nil || ctx.XRefTable.Root == nil {
			return fmt.Errorf("failed to read PDF: missing document catalog")
		}
		return nil
	})
}

func (v *PDFCPUValidator) IsValid(data []byte) bool {
	return v.Open(data) == nil
}
