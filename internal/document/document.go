package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pagemill/pagemill/pkg/models"
)

const (
	// ScreenDPI is the resolution pages rasterize at for display.
	ScreenDPI = 72.0
	// PrintDPI is the resolution pages rasterize at for printing.
	PrintDPI = 300.0
)

var (
	ErrEmptyData      = errors.New("document data is empty")
	ErrClosed         = errors.New("document is closed")
	ErrPageOutOfRange = errors.New("page index out of range")
)

type options struct {
	password string
}

type Option func(*options)

// WithPassword supplies the user or owner password for an encrypted
// document.
func WithPassword(password string) Option {
	return func(o *options) {
		o.password = password
	}
}

// Document is an open PDF document. All page access goes through it;
// it must be closed when no longer needed.
type Document struct {
	doc    *fitz.Document
	path   string
	perms  models.Permissions
	closed bool
}

// Open loads a document from a file.
func Open(path string, opts ...Option) (*Document, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.password != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc, err := openDecrypted(data, o.password)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		doc.path = path
		return doc, nil
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &Document{doc: doc, path: path, perms: models.PermissionsAll}, nil
}

// OpenBytes loads a document from memory.
func OpenBytes(data []byte, opts ...Option) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.password != "" {
		doc, err := openDecrypted(data, o.password)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		return doc, nil
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	return &Document{doc: doc, perms: models.PermissionsAll}, nil
}

// openDecrypted strips the encryption layer with pdfcpu first; go-fitz
// exposes no authentication call of its own. The encrypt dictionary's
// permission flags are read before decryption, since the decrypted copy
// no longer carries them.
func openDecrypted(data []byte, password string) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	perms := models.PermissionsAll
	if p, err := api.GetPermissions(bytes.NewReader(data), conf); err != nil {
		return nil, fmt.Errorf("read permissions: %w", err)
	} else if p != nil {
		perms = models.PermissionsFromFlags(*p)
	}

	var buf bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &buf, conf); err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	doc, err := fitz.NewFromMemory(buf.Bytes())
	if err != nil {
		return nil, err
	}

	return &Document{doc: doc, perms: perms}, nil
}

// Close releases the underlying document. It is safe to call more than
// once.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.doc.Close()
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	if d.closed {
		return 0
	}
	return d.doc.NumPage()
}

// Len is a convenience alias for NumPages.
func (d *Document) Len() int {
	return d.NumPages()
}

// IsEmpty reports whether the document has no pages.
func (d *Document) IsEmpty() bool {
	return d.Len() == 0
}

// Path returns the source file path, or "" for in-memory documents.
func (d *Document) Path() string {
	return d.path
}

// Metadata returns the raw metadata map reported by the renderer.
func (d *Document) Metadata() map[string]string {
	if d.closed {
		return nil
	}
	return d.doc.Metadata()
}

// Title returns the document title, or "" when the document has none.
func (d *Document) Title() string {
	return d.Metadata()["title"]
}

// VersionString returns the format version as "PDF-1.x", matching the
// form used in the documents themselves.
func (d *Document) VersionString() string {
	format := d.Metadata()["format"]
	return strings.ReplaceAll(format, " ", "-")
}

// Permissions returns the document's operation flags. Unencrypted
// documents grant the full byte; for encrypted documents the flags come
// from the encrypt dictionary read while opening.
func (d *Document) Permissions() models.Permissions {
	return d.perms
}

// Info collects document-level metadata in one call.
func (d *Document) Info() (models.DocumentInfo, error) {
	if d.closed {
		return models.DocumentInfo{}, ErrClosed
	}

	meta := d.Metadata()
	return models.DocumentInfo{
		Title:         meta["title"],
		Author:        meta["author"],
		Subject:       meta["subject"],
		Keywords:      meta["keywords"],
		Creator:       meta["creator"],
		Producer:      meta["producer"],
		VersionString: d.VersionString(),
		Encryption:    meta["encryption"],
		Permissions:   d.Permissions(),
		PageCount:     d.NumPages(),
	}, nil
}

// Page returns the page at the given zero-based index.
func (d *Document) Page(index int) (*Page, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if index < 0 || index >= d.NumPages() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, d.NumPages())
	}

	bounds, err := d.doc.Bound(index)
	if err != nil {
		return nil, fmt.Errorf("failed to get bounds for page %d: %w", index, err)
	}

	return &Page{
		doc: d,
		num: index,
		dims: models.PageDimensions{
			Width:  float64(bounds.Dx()),
			Height: float64(bounds.Dy()),
		},
	}, nil
}

// Walk visits every page in order, stopping at the first error.
func (d *Document) Walk(fn func(*Page) error) error {
	if d.closed {
		return ErrClosed
	}
	for i := 0; i < d.NumPages(); i++ {
		page, err := d.Page(i)
		if err != nil {
			return err
		}
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}

// Page is a single page of an open document.
type Page struct {
	doc  *Document
	num  int
	dims models.PageDimensions
}

// Num returns the zero-based page index.
func (p *Page) Num() int {
	return p.num
}

// Size returns the page dimensions in points at the default scale.
func (p *Page) Size() models.PageDimensions {
	return p.dims
}

// Text extracts the text content of the page.
func (p *Page) Text() (string, error) {
	if p.doc.closed {
		return "", ErrClosed
	}
	text, err := p.doc.doc.Text(p.num)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", p.num, err)
	}
	return text, nil
}

// Image rasterizes the page at screen resolution.
func (p *Page) Image() (*image.RGBA, error) {
	return p.imageDPI(ScreenDPI)
}

// ImageForPrint rasterizes the page at print resolution. Fine strokes
// and annotation flags come out the way a printer expects rather than
// the way a screen does.
func (p *Page) ImageForPrint() (*image.RGBA, error) {
	return p.imageDPI(PrintDPI)
}

func (p *Page) imageDPI(dpi float64) (*image.RGBA, error) {
	if p.doc.closed {
		return nil, ErrClosed
	}
	img, err := p.doc.doc.ImageDPI(p.num, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", p.num, err)
	}
	return img, nil
}
