package models_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfcheck/pkg/models"
)

var _ = Describe("CheckResult", func() {
	DescribeTable("Status",
		func(result models.CheckResult, expected string) {
			Expect(result.Status()).To(Equal(expected))
		},
		Entry("valid pdf", models.CheckResult{Source: "a.pdf", Kind: models.SourceFile, Valid: true}, models.StatusValid),
		Entry("not a pdf", models.CheckResult{Source: "a.txt", Kind: models.SourceFile}, models.StatusInvalid),
		Entry("fetch failed", models.CheckResult{Source: "http://x", Kind: models.SourceURL, Err: errors.New("boom")}, models.StatusError),
		Entry("error wins over valid flag", models.CheckResult{Valid: true, Err: errors.New("boom")}, models.StatusError),
	)
})
