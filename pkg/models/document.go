package models

// PageDimensions describes a page's media box in PDF points.
type PageDimensions struct {
	Width  float64
	Height float64
}

// DocumentInfo collects the document-level metadata exposed by the
// underlying renderer.
type DocumentInfo struct {
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	Subject       string      `json:"subject"`
	Keywords      string      `json:"keywords"`
	Creator       string      `json:"creator"`
	Producer      string      `json:"producer"`
	VersionString string      `json:"version"`
	Encryption    string      `json:"encryption,omitempty"`
	Permissions   Permissions `json:"permissions"`
	PageCount     int         `json:"page_count"`
}

// RenderedPage records one page written to disk as an image.
type RenderedPage struct {
	SourcePath string
	PageNum    int
	ImagePath  string
	Hash       string
}

// DocumentResult summarizes the processing of a single document.
// PageCount is the number of pages in the source; Rendered holds the
// pages actually written out.
type DocumentResult struct {
	PageCount int
	Rendered  []RenderedPage
}
