// Package pdf decides whether a byte buffer is a structurally valid PDF
// document. The parsing itself is delegated to one of several backends.
package pdf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Backend string

const (
	BackendPDFCPU     Backend = "pdfcpu"
	BackendMuPDF      Backend = "mupdf"
	BackendLedongthuc Backend = "ledongthuc"

	DefaultBackend = BackendPDFCPU
)

var (
	ErrUnknownBackend = errors.New("unknown pdf backend")
	ErrEmpty          = errors.New("empty input")
)

// Validator opens a PDF container (header, cross-reference data, trailer)
// without interpreting page content.
//
// IsValid never fails: every parse problem, including a panic inside the
// parser, is reported as false. Open returns the reason for logging.
// Implementations only read data and never retain it after returning.
type Validator interface {
	Backend() Backend
	Open(data []byte) error
	IsValid(data []byte) bool
}

var constructors = map[Backend]func() Validator{
	BackendPDFCPU:     func() Validator { return NewPDFCPUValidator() },
	BackendMuPDF:      func() Validator { return NewMuPDFValidator() },
	BackendLedongthuc: func() Validator { return NewLedongthucValidator() },
}

func New(backend Backend) (Validator, error) {
	if backend == "" {
		backend = DefaultBackend
	}
	ctor, ok := constructors[Backend(strings.ToLower(string(backend)))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, backend, strings.Join(Backends(), ", "))
	}
	return ctor(), nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(constructors))
	for b := range constructors {
		names = append(names, string(b))
	}
	sort.Strings(names)
	return names
}

// safeOpen runs open and turns a parser panic into an error.
func safeOpen(backend Backend, data []byte, open func([]byte) error) (err error) {
	if len(data) == 0 {
		return ErrEmpty
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: parser panic: %v", backend, r)
		}
	}()
	return open(data)
}
