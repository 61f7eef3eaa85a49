package niem

import (
	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
)

// Element and attribute names used by FOIA annual reports.
const (
	RootName         = "iepd:FoiaAnnualReport"
	OrganizationName = "nc:Organization"
	SubUnitName      = "nc:OrganizationSubUnit"
	AbbreviationName = "nc:OrganizationAbbreviationText"
	IDAttr           = "s:id"
	RefAttr          = "s:ref"

	ComponentDataReferenceName = "foia:ComponentDataReference"
	OrganizationReferenceName  = "nc:OrganizationReference"
)

// Report is a view over a decoded annual report document.
type Report struct {
	doc *Document
}

// NewReport wraps doc, checking that it is an annual report.
func NewReport(doc *Document) (*Report, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.NewValidationError("document", nil, "is empty")
	}
	if doc.Root.Name != RootName {
		return nil, errors.NewValidationError("root", doc.Root.Name, "expected "+RootName)
	}
	return &Report{doc: doc}, nil
}

// Document returns the underlying document.
func (r *Report) Document() *Document {
	return r.doc
}

// Root returns the report root element.
func (r *Report) Root() *Element {
	return r.doc.Root
}

// Organization returns the filing agency element, or nil.
func (r *Report) Organization() *Element {
	return r.doc.Root.Child(OrganizationName)
}

// Agency returns the filing agency abbreviation as written in the document.
func (r *Report) Agency() (string, error) {
	text := r.agencyText()
	if text == nil {
		return "", errors.NewNotFoundError("element", OrganizationName+"/"+AbbreviationName)
	}
	return text.Text, nil
}

// SetAgency rewrites the filing agency abbreviation.
func (r *Report) SetAgency(abbrev string) error {
	text := r.agencyText()
	if text == nil {
		return errors.NewNotFoundError("element", OrganizationName+"/"+AbbreviationName)
	}
	text.Text = abbrev
	return nil
}

func (r *Report) agencyText() *Element {
	return r.doc.Root.Find(OrganizationName, AbbreviationName)
}

// SubUnit is one organization sub-unit (component) of the filing agency.
type SubUnit struct {
	El *Element
}

// ID returns the sub-unit's internal identifier.
func (s SubUnit) ID() string {
	id, _ := s.El.Attr(IDAttr)
	return id
}

// Abbreviation returns the sub-unit abbreviation text.
func (s SubUnit) Abbreviation() string {
	if text := s.El.Child(AbbreviationName); text != nil {
		return text.Text
	}
	return ""
}

// SetAbbreviation rewrites the abbreviation text, creating the element when
// it is missing.
func (s SubUnit) SetAbbreviation(abbrev string) {
	text := s.El.Child(AbbreviationName)
	if text == nil {
		text = NewElement(AbbreviationName)
		s.El.Append(text)
	}
	text.Text = abbrev
}

// SubUnits returns the agency's sub-units in document order. A report with
// no sub-units yields an empty slice.
func (r *Report) SubUnits() []SubUnit {
	org := r.Organization()
	if org == nil {
		return nil
	}
	els := org.ChildrenNamed(SubUnitName)
	out := make([]SubUnit, len(els))
	for i, el := range els {
		out[i] = SubUnit{El: el}
	}
	return out
}

// SetSubUnits replaces the agency's sub-units with units, placing them where
// the first existing sub-unit was, or at the end of the organization.
func (r *Report) SetSubUnits(units []SubUnit) {
	org := r.Organization()
	if org == nil {
		return
	}

	children := make([]*Element, 0, len(org.Children)+len(units))
	placed := false
	for _, c := range org.Children {
		if c.Name != SubUnitName {
			children = append(children, c)
			continue
		}
		if !placed {
			for _, u := range units {
				children = append(children, u.El)
			}
			placed = true
		}
	}
	if !placed {
		for _, u := range units {
			children = append(children, u.El)
		}
	}
	org.Children = children
}

// References returns the set of every s:ref value in the document.
func (r *Report) References() map[string]struct{} {
	refs := make(map[string]struct{})
	r.doc.Root.Walk(func(e *Element) bool {
		if ref, ok := e.Attr(RefAttr); ok {
			refs[ref] = struct{}{}
		}
		return true
	})
	return refs
}

// Section returns the named top-level section, or nil when absent.
func (r *Report) Section(name string) *Element {
	return r.doc.Root.Child(name)
}

// OrganizationAssociation builds an association element linking a section's
// data id to the filing agency.
func OrganizationAssociation(name, dataID string) *Element {
	return NewElement(name).Append(
		NewElement(ComponentDataReferenceName).SetAttr(RefAttr, dataID),
		NewElement(OrganizationReferenceName).SetAttr(RefAttr, constants.AgencyOrgID),
	)
}
