// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
)

// Minimal returns a one page PDF 1.4 document with a correct cross-reference
// table and trailer.
func Minimal() []byte {
	return build([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	})
}

// PlainText is content that is clearly not a PDF.
func PlainText() []byte {
	return []byte("This is a plain text response, not a PDF.\n")
}

// Garbage returns n bytes of deterministic non-PDF noise.
func Garbage(n int) []byte {
	out := make([]byte, n)
	var x uint32 = 0xdeadbeef
	for i := range out {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		out[i] = byte(x)
	}
	if n > 0 {
		out[0] = 0xff
	}
	return out
}

func build(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// WithoutXref is Minimal cut off before its cross-reference table, so it has
// no xref, trailer or %%EOF.
func WithoutXref() []byte {
	return cutBefore(Minimal(), "xref\n")
}

// WithoutTrailer keeps the xref table but drops trailer, startxref and %%EOF.
func WithoutTrailer() []byte {
	return cutBefore(Minimal(), "trailer")
}

// WithoutEOF drops only the final %%EOF marker.
func WithoutEOF() []byte {
	return cutBefore(Minimal(), "%%EOF")
}

// BadStartxref points startxref past the end of the file.
func BadStartxref() []byte {
	data := Minimal()
	i := bytes.LastIndex(data, []byte("startxref\n"))
	head := data[:i+len("startxref\n")]
	rest := data[i+len("startxref\n"):]
	nl := bytes.IndexByte(rest, '\n')

	var buf bytes.Buffer
	buf.Write(head)
	fmt.Fprintf(&buf, "%d", len(data)+1000)
	buf.Write(rest[nl:])
	return buf.Bytes()
}

func cutBefore(data []byte, marker string) []byte {
	i := bytes.Index(data, []byte(marker))
	if i < 0 {
		panic("pdftest: marker " + marker + " not found")
	}
	return data[:i]
}
