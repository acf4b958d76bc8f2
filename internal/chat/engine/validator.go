// Package engine contains the conversation controller of the drafting
// flow: schema validation, question selection, and execution of
// confirmed drafts.
package engine

import (
	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
)

// FieldIssue describes a field that is present but unusable.
type FieldIssue struct {
	Field  string
	Reason string
}

// Validation is the result of checking a draft against its intent's
// schema. Missing and invalid fields are kept apart: missing fields get
// their catalog question, invalid fields get it re-asked with the
// reason appended.
type Validation struct {
	Missing []string
	Invalid []FieldIssue
}

// OK reports whether the draft is complete and consistent.
func (v Validation) OK() bool {
	return len(v.Missing) == 0 && len(v.Invalid) == 0
}

// Validate checks the draft against the schema of its intent.
func Validate(d *draft.Draft) Validation {
	switch d.Intent {
	case intent.CreateClient:
		return validateClient(d.Client)
	case intent.CreateFactuur, intent.CreateOfferte:
		return validateDocument(d.Document)
	default:
		return Validation{}
	}
}

func validateClient(c *draft.ClientFields) Validation {
	var v Validation
	if c == nil || c.Name == "" {
		v.Missing = append(v.Missing, "name")
	}
	return v
}

func validateDocument(doc *draft.DocumentFields) Validation {
	var v Validation
	if doc == nil {
		v.Missing = append(v.Missing, "clientName", "items")
		return v
	}

	if doc.ClientName == "" {
		v.Missing = append(v.Missing, "clientName")
	}

	// Either line items or a bare total amount; neither means the
	// substance of the document is still missing.
	if len(doc.Items) == 0 && doc.Amount == nil {
		v.Missing = append(v.Missing, "items")
	}

	for _, item := range doc.Items {
		if item.Quantity <= 0 {
			v.Invalid = append(v.Invalid, FieldIssue{Field: "items", Reason: "het aantal moet groter zijn dan nul"})
			break
		}
		if item.Price < 0 {
			v.Invalid = append(v.Invalid, FieldIssue{Field: "items", Reason: "de prijs mag niet negatief zijn"})
			break
		}
	}

	if doc.Amount != nil && *doc.Amount <= 0 {
		v.Invalid = append(v.Invalid, FieldIssue{Field: "amount", Reason: "het bedrag moet groter zijn dan nul"})
	}

	if doc.VATRate != "" {
		switch doc.VATRate {
		case extract.VATHigh, extract.VATLow, extract.VATZero:
		default:
			v.Invalid = append(v.Invalid, FieldIssue{Field: "vatRate", Reason: "alleen 21, 9 of 0 procent is toegestaan"})
		}
	}

	return v
}
