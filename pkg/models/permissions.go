package models

import "strings"

// Permissions is the byte of operation flags carried by a document's
// encryption dictionary. A document without encryption grants every
// operation.
type Permissions uint8

const (
	PermPrint Permissions = 1 << iota
	PermModify
	PermCopy
	PermAddNotes
	PermFillForms
	PermExtractContents
	PermAssemble
	PermPrintHighRes

	PermissionsAll Permissions = 0xff
)

// flagBits maps the relevant bit positions of an encrypt dictionary's
// raw P entry (PDF 32000-1:2008, table 22; 1-based bits 3-6 and 9-12)
// onto the compact byte.
var flagBits = []struct {
	raw  uint16
	perm Permissions
}{
	{1 << 2, PermPrint},
	{1 << 3, PermModify},
	{1 << 4, PermCopy},
	{1 << 5, PermAddNotes},
	{1 << 8, PermFillForms},
	{1 << 9, PermExtractContents},
	{1 << 10, PermAssemble},
	{1 << 11, PermPrintHighRes},
}

// PermissionsFromFlags converts a raw P entry into the compact byte.
// The entry is signed on the wire; only the low sixteen bits matter.
func PermissionsFromFlags(p int16) Permissions {
	raw := uint16(p)
	var out Permissions
	for _, f := range flagBits {
		if raw&f.raw != 0 {
			out |= f.perm
		}
	}
	return out
}

func (p Permissions) CanPrint() bool           { return p&PermPrint != 0 }
func (p Permissions) CanModify() bool          { return p&PermModify != 0 }
func (p Permissions) CanCopy() bool            { return p&PermCopy != 0 }
func (p Permissions) CanAddNotes() bool        { return p&PermAddNotes != 0 }
func (p Permissions) CanFillForms() bool       { return p&PermFillForms != 0 }
func (p Permissions) CanExtractContents() bool { return p&PermExtractContents != 0 }
func (p Permissions) CanAssemble() bool        { return p&PermAssemble != 0 }
func (p Permissions) CanPrintHighRes() bool    { return p&PermPrintHighRes != 0 }

var permNames = []struct {
	bit  Permissions
	name string
}{
	{PermPrint, "print"},
	{PermModify, "modify"},
	{PermCopy, "copy"},
	{PermAddNotes, "add-notes"},
	{PermFillForms, "fill-forms"},
	{PermExtractContents, "extract-contents"},
	{PermAssemble, "assemble"},
	{PermPrintHighRes, "print-high-res"},
}

// String lists the granted operations, or "all"/"none" for the two
// extremes.
func (p Permissions) String() string {
	switch p {
	case PermissionsAll:
		return "all"
	case 0:
		return "none"
	}

	var granted []string
	for _, n := range permNames {
		if p&n.bit != 0 {
			granted = append(granted, n.name)
		}
	}
	return strings.Join(granted, ",")
}
