package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ReasonCategory says who is to blame for a negative outcome.
type ReasonCategory string

const (
	ReasonNeutral      ReasonCategory = "neutral"
	ReasonCompanyFault ReasonCategory = "company_fault"
)

func ParseReasonCategory(s string) (ReasonCategory, error) {
	switch c := ReasonCategory(s); c {
	case ReasonNeutral, ReasonCompanyFault:
		return c, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"reason_category", fmt.Errorf("%q is not a valid reason category", s))
	}
}

// Reason records who is to blame for how an order went. Any held order may carry
// one; not_possible and storno require a complete one (text and photo).
type Reason struct {
	category ReasonCategory
	text     string
	photoRef string
}

func NewReason(category ReasonCategory, text, photoRef string) (Reason, error) {
	if _, err := ParseReasonCategory(string(category)); err != nil {
		return Reason{}, err
	}
	return Reason{
		category: category,
		text:     strings.TrimSpace(text),
		photoRef: strings.TrimSpace(photoRef),
	}, nil
}

// ValidateComplete checks the text and photo a negative outcome needs.
func (r Reason) ValidateComplete() error {
	if r.category == "" {
		return errs.NewValueIsRequiredError("reason_category")
	}
	if r.text == "" {
		return errs.NewValueIsRequiredError("reason_text")
	}
	if r.photoRef == "" {
		return errs.NewValueIsRequiredError("photo")
	}
	return nil
}

func (r Reason) Category() ReasonCategory {
	return r.category
}

func (r Reason) Text() string {
	return r.text
}

func (r Reason) PhotoRef() string {
	return r.photoRef
}

func (r Reason) IsCompanyFault() bool {
	return r.category == ReasonCompanyFault
}
