package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfcheck/internal/pdf/pdftest"
	"github.com/kpauljoseph/pdfcheck/internal/report"
	"github.com/kpauljoseph/pdfcheck/pkg/version"
)

var _ = Describe("pdfcheck CLI", func() {
	var (
		testDir        string
		validPath      string
		textPath       string
		server         *httptest.Server
		stdout, stderr *bytes.Buffer
		ctx            context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "pdfcheck-cli-*")
		Expect(err).NotTo(HaveOccurred())

		validPath = filepath.Join(testDir, "book.pdf")
		Expect(os.WriteFile(validPath, pdftest.Minimal(), 0644)).To(Succeed())

		textPath = filepath.Join(testDir, "notes.txt")
		Expect(os.WriteFile(textPath, pdftest.PlainText(), 0644)).To(Succeed())

		mux := http.NewServeMux()
		mux.HandleFunc("/book.pdf", func(w http.ResponseWriter, r *http.Request) {
			w.Write(pdftest.Minimal())
		})
		mux.HandleFunc("/missing.pdf", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		server = httptest.NewServer(mux)

		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		ctx = context.Background()

		// keep a stray config.yaml in the working directory out of the way
		DeferCleanup(os.Chdir, mustGetwd())
		Expect(os.Chdir(testDir)).To(Succeed())
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(testDir)
	})

	It("should exit 0 when every input is a PDF", func() {
		code := run(ctx, []string{validPath, server.URL + "/book.pdf"}, stdout, stderr)
		Expect(code).To(Equal(report.ExitAllValid), stderr.String())
		Expect(stdout.String()).To(ContainSubstring("book.pdf"))
		Expect(stdout.String()).To(ContainSubstring(server.URL))
	})

	It("should exit 1 when an input is not a PDF", func() {
		code := run(ctx, []string{validPath, textPath}, stdout, stderr)
		Expect(code).To(Equal(report.ExitSomeFailed))
		Expect(stdout.String()).To(ContainSubstring("INVALID"))
	})

	It("should exit 2 when a URL cannot be fetched", func() {
		code := run(ctx, []string{validPath, server.URL + "/missing.pdf"}, stdout, stderr)
		Expect(code).To(Equal(report.ExitErrors))
		Expect(stdout.String()).To(ContainSubstring("404"))
	})

	It("should exit 2 when a file cannot be read", func() {
		code := run(ctx, []string{filepath.Join(testDir, "absent.pdf")}, stdout, stderr)
		Expect(code).To(Equal(report.ExitErrors))
	})

	It("should check every PDF under --dir", func() {
		nested := filepath.Join(testDir, "shelf")
		Expect(os.MkdirAll(nested, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(nested, "broken.pdf"), []byte("%PDF-"), 0644)).To(Succeed())

		code := run(ctx, []string{"--dir", testDir, "--backend", "ledongthuc"}, stdout, stderr)
		Expect(code).To(Equal(report.ExitSomeFailed))
		Expect(stdout.String()).To(ContainSubstring("broken.pdf"))
		Expect(stderr.String()).To(ContainSubstring("Found 2 PDFs"))
	})

	It("should read settings from a config file", func() {
		cfgPath := filepath.Join(testDir, "custom.yaml")
		Expect(os.WriteFile(cfgPath, []byte("backend: ledongthuc\nlog_level: debug\n"), 0644)).To(Succeed())

		code := run(ctx, []string{"--config", cfgPath, validPath}, stdout, stderr)
		Expect(code).To(Equal(report.ExitAllValid))
		Expect(stderr.String()).To(ContainSubstring("Using backend ledongthuc"))
	})

	It("should fail when an explicit config file is missing", func() {
		code := run(ctx, []string{"--config", filepath.Join(testDir, "nope.yaml"), validPath}, stdout, stderr)
		Expect(code).To(Equal(report.ExitUsage))
		Expect(stderr.String()).To(ContainSubstring("WARN: Error loading config"))
	})

	It("should reject an unknown backend", func() {
		code := run(ctx, []string{"--backend", "poppler", validPath}, stdout, stderr)
		Expect(code).To(Equal(report.ExitUsage))
		Expect(stderr.String()).To(ContainSubstring("poppler"))
		Expect(stderr.String()).To(ContainSubstring("WARN: Invalid configuration"))
	})

	It("should require at least one input", func() {
		code := run(ctx, nil, stdout, stderr)
		Expect(code).To(Equal(report.ExitUsage))
		Expect(stderr.String()).To(ContainSubstring("Usage: pdfcheck"))
		Expect(stderr.String()).To(ContainSubstring(version.GetVersionInfo()))
	})

	It("should skip remaining inputs once cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		code := run(cancelled, []string{validPath, textPath}, stdout, stderr)
		Expect(code).To(Equal(report.ExitAllValid))
		Expect(stderr.String()).To(ContainSubstring("WARN: Interrupted, skipping remaining inputs"))
		Expect(stdout.String()).NotTo(ContainSubstring("notes.txt"))
	})

	It("should write JSON with --json", func() {
		code := run(ctx, []string{"--json", validPath, textPath, server.URL + "/missing.pdf"}, stdout, stderr)
		Expect(code).To(Equal(report.ExitErrors))

		var results []map[string]interface{}
		Expect(json.Unmarshal(stdout.Bytes(), &results)).To(Succeed(), stdout.String())
		Expect(results).To(HaveLen(3))
		Expect(results[0]).To(HaveKeyWithValue("source", validPath))
		Expect(results[0]).To(HaveKeyWithValue("status", "valid"))
		Expect(results[1]).To(HaveKeyWithValue("status", "invalid"))
		Expect(results[2]).To(HaveKeyWithValue("kind", "url"))
		Expect(results[2]).To(HaveKeyWithValue("status", "error"))
		Expect(results[2]["error"]).To(ContainSubstring("404"))
	})

	DescribeTable("rejecting a damaged PDF on every backend",
		func(backend string) {
			damaged := filepath.Join(testDir, "damaged.pdf")
			Expect(os.WriteFile(damaged, pdftest.WithoutTrailer(), 0644)).To(Succeed())

			code := run(ctx, []string{"--backend", backend, validPath, damaged}, stdout, stderr)
			Expect(code).To(Equal(report.ExitSomeFailed))
			Expect(stdout.String()).To(ContainSubstring("INVALID"))
			Expect(stderr.String()).NotTo(ContainSubstring("repair"))
		},
		Entry("pdfcpu", "pdfcpu"),
		Entry("mupdf", "mupdf"),
		Entry("ledongthuc", "ledongthuc"),
	)

	It("should print the version", func() {
		code := run(ctx, []string{"--version"}, stdout, stderr)
		Expect(code).To(Equal(report.ExitAllValid))
		Expect(stdout.String()).To(ContainSubstring("Version:"))
	})
})

func mustGetwd() string {
	wd, err := os.Getwd()
	Expect(err).NotTo(HaveOccurred())
	return wd
}
