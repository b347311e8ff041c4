package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAppendLedgerEntryCommandIsNotConstructed = errors.New(
	"AppendLedgerEntryCommand must be created via NewAppendLedgerEntryCommand constructor",
)

// AppendLedgerEntryCommand is a dispatcher posting, normally a manual correction.
type AppendLedgerEntryCommand struct {
	companyID kernel.UUID
	orderID   *kernel.UUID
	entryType ledger.EntryType
	source    ledger.Source
	amount    kernel.Money
	comment   string
	actor     actor.Actor

	guard guard.ConstructorGuard
}

func NewAppendLedgerEntryCommand(
	companyID kernel.UUID,
	orderID *kernel.UUID,
	entryType ledger.EntryType,
	source ledger.Source,
	amount kernel.Money,
	comment string,
	a actor.Actor,
) (AppendLedgerEntryCommand, error) {
	if entryType == "" {
		entryType = ledger.Manual
	}
	if source == "" {
		source = ledger.Direct
	}
	_, typeErr := ledger.ParseEntryType(string(entryType))
	_, sourceErr := ledger.ParseSource(string(source))
	var orderErr, amountErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	if amount.IsZero() {
		amountErr = errs.NewValueIsInvalidError("amount")
	}
	if err := errors.Join(companyID.Validate(), orderErr, typeErr, sourceErr, amountErr, a.Validate()); err != nil {
		return AppendLedgerEntryCommand{}, err
	}

	return AppendLedgerEntryCommand{
		companyID: companyID,
		orderID:   orderID,
		entryType: entryType,
		source:    source,
		amount:    amount,
		comment:   comment,
		actor:     a,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AppendLedgerEntryCommand) Validate() error {
	return c.guard.Validate(ErrAppendLedgerEntryCommandIsNotConstructed)
}

func (c AppendLedgerEntryCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c AppendLedgerEntryCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c AppendLedgerEntryCommand) EntryType() ledger.EntryType {
	return c.entryType
}

func (c AppendLedgerEntryCommand) Source() ledger.Source {
	return c.source
}

func (c AppendLedgerEntryCommand) Amount() kernel.Money {
	return c.amount
}

func (c AppendLedgerEntryCommand) Comment() string {
	return c.comment
}

func (c AppendLedgerEntryCommand) Actor() actor.Actor {
	return c.actor
}
