package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReportOutcomeCommandIsNotConstructed = errors.New(
	"ReportOutcomeCommand must be created via NewReportOutcomeCommand constructor",
)

// Photo is an uploaded image documenting an outcome.
type Photo struct {
	Filename string
	Content  []byte
}

// ReportOutcomeCommand is the holder closing an order as not_possible or storno.
// Category, text and photo are all mandatory.
type ReportOutcomeCommand struct {
	custody
	outcome  order.Status
	category order.ReasonCategory
	text     string
	photo    Photo

	guard guard.ConstructorGuard
}

func NewReportOutcomeCommand(
	orderID, companyID kernel.UUID,
	outcome order.Status,
	category order.ReasonCategory,
	text string,
	photo Photo,
	a actor.Actor,
) (ReportOutcomeCommand, error) {
	c, err := newCustody(orderID, companyID, a)
	if err != nil {
		return ReportOutcomeCommand{}, err
	}

	var outcomeErr, textErr, photoErr error
	if !outcome.IsNegativeOutcome() {
		outcomeErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not not_possible or storno", outcome))
	}
	_, categoryErr := order.ParseReasonCategory(string(category))
	text = strings.TrimSpace(text)
	if text == "" {
		textErr = errs.NewValueIsRequiredError("reason_text")
	}
	if len(photo.Content) == 0 {
		photoErr = errs.NewValueIsRequiredError("photo")
	}
	if err = errors.Join(outcomeErr, categoryErr, textErr, photoErr); err != nil {
		return ReportOutcomeCommand{}, err
	}

	return ReportOutcomeCommand{
		custody:  c,
		outcome:  outcome,
		category: category,
		text:     text,
		photo:    photo,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReportOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrReportOutcomeCommandIsNotConstructed)
}

func (c ReportOutcomeCommand) Outcome() order.Status {
	return c.outcome
}

func (c ReportOutcomeCommand) Category() order.ReasonCategory {
	return c.category
}

func (c ReportOutcomeCommand) Text() string {
	return c.text
}

func (c ReportOutcomeCommand) Photo() Photo {
	return c.photo
}
