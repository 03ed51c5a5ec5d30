package document_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/pkg/models"
)

const (
	samplePDF     = "testdata/sample.pdf"
	restrictedPDF = "testdata/restricted.pdf"

	restrictedPassword = "upw"
)

var _ = Describe("Document", func() {
	Context("opening from a file", func() {
		It("should open a valid document", func() {
			doc, err := document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			Expect(doc.NumPages()).To(Equal(1))
			Expect(doc.Len()).To(Equal(1))
			Expect(doc.IsEmpty()).To(BeFalse())
			Expect(doc.Path()).To(Equal(samplePDF))
		})

		It("should fail on a missing file", func() {
			_, err := document.Open(filepath.Join("testdata", "does-not-exist.pdf"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("opening from memory", func() {
		It("should open valid document bytes", func() {
			data, err := os.ReadFile(samplePDF)
			Expect(err).NotTo(HaveOccurred())

			doc, err := document.OpenBytes(data)
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			Expect(doc.NumPages()).To(Equal(1))
			Expect(doc.Path()).To(BeEmpty())
		})

		It("should reject empty data", func() {
			_, err := document.OpenBytes(nil)
			Expect(err).To(MatchError(document.ErrEmptyData))

			_, err = document.OpenBytes([]byte{})
			Expect(err).To(MatchError(document.ErrEmptyData))
		})
	})

	Context("metadata", func() {
		var doc *document.Document

		BeforeEach(func() {
			var err error
			doc, err = document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			Expect(doc.Close()).To(Succeed())
		})

		It("should report the title", func() {
			Expect(doc.Title()).To(Equal("This is a test PDF file"))
		})

		It("should report the version string in PDF-1.x form", func() {
			Expect(doc.VersionString()).To(Equal("PDF-1.3"))
		})

		It("should grant the full permission byte", func() {
			Expect(doc.Permissions()).To(Equal(models.PermissionsAll))
		})

		It("should collect everything into Info", func() {
			info, err := doc.Info()
			Expect(err).NotTo(HaveOccurred())

			Expect(info.Title).To(Equal("This is a test PDF file"))
			Expect(info.Author).To(Equal("pagemill"))
			Expect(info.VersionString).To(Equal("PDF-1.3"))
			Expect(info.Permissions).To(Equal(models.PermissionsAll))
			Expect(info.PageCount).To(Equal(1))
		})
	})

	Context("encrypted documents", func() {
		It("should open with the right password", func() {
			doc, err := document.Open(restrictedPDF, document.WithPassword(restrictedPassword))
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			Expect(doc.NumPages()).To(Equal(1))

			page, err := doc.Page(0)
			Expect(err).NotTo(HaveOccurred())
			text, err := page.Text()
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("Hello pagemill"))
		})

		It("should fail with the wrong password", func() {
			_, err := document.Open(restrictedPDF, document.WithPassword("wrong"))
			Expect(err).To(HaveOccurred())
		})

		It("should surface the restricted permission byte", func() {
			// The testdata document permits printing and nothing else.
			data, err := os.ReadFile(restrictedPDF)
			Expect(err).NotTo(HaveOccurred())

			doc, err := document.OpenBytes(data, document.WithPassword(restrictedPassword))
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			perms := doc.Permissions()
			Expect(perms).To(Equal(models.PermPrint))
			Expect(perms.CanPrint()).To(BeTrue())
			Expect(perms.CanCopy()).To(BeFalse())
			Expect(perms.CanModify()).To(BeFalse())

			info, err := doc.Info()
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Permissions).To(Equal(models.PermPrint))
		})
	})

	Context("page access", func() {
		var doc *document.Document

		BeforeEach(func() {
			var err error
			doc, err = document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			Expect(doc.Close()).To(Succeed())
		})

		It("should report A4 page dimensions", func() {
			page, err := doc.Page(0)
			Expect(err).NotTo(HaveOccurred())

			size := page.Size()
			Expect(size.Width).To(BeNumerically("~", 595, 1))
			Expect(size.Height).To(BeNumerically("~", 842, 1))
		})

		It("should extract page text", func() {
			page, err := doc.Page(0)
			Expect(err).NotTo(HaveOccurred())

			text, err := page.Text()
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("Hello pagemill"))
		})

		It("should rasterize a page at screen resolution", func() {
			page, err := doc.Page(0)
			Expect(err).NotTo(HaveOccurred())

			img, err := page.Image()
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(BeNumerically(">", 0))
		})

		It("should rasterize larger for print than for screen", func() {
			page, err := doc.Page(0)
			Expect(err).NotTo(HaveOccurred())

			screen, err := page.Image()
			Expect(err).NotTo(HaveOccurred())
			printed, err := page.ImageForPrint()
			Expect(err).NotTo(HaveOccurred())

			Expect(printed.Bounds().Dx()).To(BeNumerically(">", screen.Bounds().Dx()))
		})

		DescribeTable("out of range indices",
			func(index int) {
				_, err := doc.Page(index)
				Expect(err).To(MatchError(document.ErrPageOutOfRange))
			},
			Entry("negative", -1),
			Entry("past the end", 1),
			Entry("far past the end", 100),
		)
	})

	Context("page iteration", func() {
		It("should visit every page in order", func() {
			doc, err := document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			var visited []int
			err = doc.Walk(func(page *document.Page) error {
				visited = append(visited, page.Num())
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(visited).To(Equal([]int{0}))
		})

		It("should stop at the first error", func() {
			doc, err := document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			boom := os.ErrPermission
			err = doc.Walk(func(page *document.Page) error {
				return boom
			})
			Expect(err).To(MatchError(boom))
		})
	})

	Context("after Close", func() {
		It("should refuse page access", func() {
			doc, err := document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Close()).To(Succeed())

			_, err = doc.Page(0)
			Expect(err).To(MatchError(document.ErrClosed))

			_, err = doc.Info()
			Expect(err).To(MatchError(document.ErrClosed))
		})

		It("should refuse to walk pages", func() {
			doc, err := document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Close()).To(Succeed())

			visited := 0
			err = doc.Walk(func(page *document.Page) error {
				visited++
				return nil
			})
			Expect(err).To(MatchError(document.ErrClosed))
			Expect(visited).To(BeZero())
		})

		It("should tolerate a double Close", func() {
			doc, err := document.Open(samplePDF)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Close()).To(Succeed())
			Expect(doc.Close()).To(Succeed())
		})
	})
})
