package document_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/pkg/logger"
)

func renderTestLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[render-test] "),
		logger.WithFlags(0),
		logger.WithLevel(logger.LevelTrace),
	)
}

var _ = Describe("Renderer", func() {
	var (
		outputDir string
		doc       *document.Document
	)

	BeforeEach(func() {
		var err error
		outputDir, err = os.MkdirTemp("", "pagemill-render-*")
		Expect(err).NotTo(HaveOccurred())

		doc, err = document.Open(samplePDF)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(doc.Close()).To(Succeed())
		Expect(os.RemoveAll(outputDir)).To(Succeed())
	})

	It("should create a missing output directory", func() {
		nested := filepath.Join(outputDir, "nested", "pages")
		_, err := document.NewRenderer(nested, document.RenderForScreen, renderTestLogger())
		Expect(err).NotTo(HaveOccurred())
		Expect(nested).To(BeADirectory())
	})

	It("should render every page to a hash-named PNG", func() {
		renderer, err := document.NewRenderer(outputDir, document.RenderForScreen, renderTestLogger())
		Expect(err).NotTo(HaveOccurred())

		rendered, err := renderer.RenderAll(context.Background(), doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(rendered).To(HaveLen(1))

		Expect(rendered[0].PageNum).To(Equal(0))
		Expect(rendered[0].SourcePath).To(Equal(samplePDF))
		Expect(rendered[0].Hash).NotTo(BeEmpty())
		Expect(rendered[0].ImagePath).To(BeARegularFile())
		Expect(filepath.Base(rendered[0].ImagePath)).To(
			Equal("page_0_" + rendered[0].Hash[:8] + ".png"))
	})

	It("should report the source page count when processing a file", func() {
		renderer, err := document.NewRenderer(outputDir, document.RenderForScreen, renderTestLogger())
		Expect(err).NotTo(HaveOccurred())

		result, err := renderer.ProcessDocument(context.Background(), samplePDF)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.PageCount).To(Equal(1))
		Expect(result.Rendered).To(HaveLen(1))
	})

	It("should stop when the context is cancelled", func() {
		renderer, err := document.NewRenderer(outputDir, document.RenderForScreen, renderTestLogger())
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = renderer.RenderAll(ctx, doc)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should clean up its output directory", func() {
		target := filepath.Join(outputDir, "pages")
		renderer, err := document.NewRenderer(target, document.RenderForScreen, renderTestLogger())
		Expect(err).NotTo(HaveOccurred())

		Expect(target).To(BeADirectory())
		Expect(renderer.Cleanup()).To(Succeed())
		Expect(target).NotTo(BeADirectory())
	})
})
