package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pagemill/pagemill/pkg/models"
)

var _ = Describe("Permissions", func() {
	Context("full permission byte", func() {
		It("should grant every operation", func() {
			p := models.PermissionsAll

			Expect(p.CanPrint()).To(BeTrue())
			Expect(p.CanModify()).To(BeTrue())
			Expect(p.CanCopy()).To(BeTrue())
			Expect(p.CanAddNotes()).To(BeTrue())
			Expect(p.CanFillForms()).To(BeTrue())
			Expect(p.CanExtractContents()).To(BeTrue())
			Expect(p.CanAssemble()).To(BeTrue())
			Expect(p.CanPrintHighRes()).To(BeTrue())
		})

		It("should equal 0xff", func() {
			Expect(uint8(models.PermissionsAll)).To(Equal(uint8(0xff)))
		})
	})

	Context("restricted permission bytes", func() {
		It("should only grant the set bits", func() {
			p := models.PermPrint | models.PermCopy

			Expect(p.CanPrint()).To(BeTrue())
			Expect(p.CanCopy()).To(BeTrue())
			Expect(p.CanModify()).To(BeFalse())
			Expect(p.CanAssemble()).To(BeFalse())
		})
	})

	DescribeTable("PermissionsFromFlags",
		func(raw int16, expected models.Permissions) {
			Expect(models.PermissionsFromFlags(raw)).To(Equal(expected))
		},
		// P entries are signed 32-bit on the wire with the reserved
		// high bits set; the values below are their low sixteen bits.
		Entry("everything granted", int16(-1), models.PermissionsAll),
		Entry("everything denied", int16(-3901), models.Permissions(0)),
		Entry("print only", int16(-3897), models.PermPrint),
		Entry("extract and copy", int16(-3373), models.PermCopy|models.PermExtractContents),
	)

	DescribeTable("String",
		func(p models.Permissions, expected string) {
			Expect(p.String()).To(Equal(expected))
		},
		Entry("all bits", models.PermissionsAll, "all"),
		Entry("no bits", models.Permissions(0), "none"),
		Entry("print only", models.PermPrint, "print"),
		Entry("print and copy", models.PermPrint|models.PermCopy, "print,copy"),
		Entry("forms and assembly", models.PermFillForms|models.PermAssemble, "fill-forms,assemble"),
	)
})

var _ = Describe("Document Models", func() {
	Context("DocumentInfo", func() {
		It("should properly store document metadata", func() {
			info := models.DocumentInfo{
				Title:         "This is a test PDF file",
				Author:        "pagemill",
				VersionString: "PDF-1.3",
				Permissions:   models.PermissionsAll,
				PageCount:     1,
			}

			Expect(info.Title).To(Equal("This is a test PDF file"))
			Expect(info.VersionString).To(Equal("PDF-1.3"))
			Expect(info.Permissions).To(Equal(models.PermissionsAll))
			Expect(info.PageCount).To(Equal(1))
		})
	})

	Context("RenderedPage", func() {
		It("should properly store page information", func() {
			page := models.RenderedPage{
				SourcePath: "/path/to/pdf",
				PageNum:    1,
				ImagePath:  "/path/to/image",
				Hash:       "abc123",
			}

			Expect(page.SourcePath).To(Equal("/path/to/pdf"))
			Expect(page.PageNum).To(Equal(1))
			Expect(page.ImagePath).To(Equal("/path/to/image"))
			Expect(page.Hash).To(Equal("abc123"))
		})
	})
})
