// Package ledger models the append-only log of money movements per company.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

type EntryType string

const (
	Penalty     EntryType = "penalty"
	BasePayment EntryType = "base_payment"
	BonusCredit EntryType = "bonus_credit"
	Manual      EntryType = "manual"
)

func ParseEntryType(s string) (EntryType, error) {
	switch t := EntryType(s); t {
	case Penalty, BasePayment, BonusCredit, Manual:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("entry_type", fmt.Errorf("%q is not a valid entry type", s))
	}
}

// Source tells whether the order behind an entry came directly or through the open pool.
type Source string

const (
	Direct   Source = "direct"
	OpenPool Source = "open_pool"
)

func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case Direct, OpenPool:
		return src, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%q is not a valid source", s))
	}
}

// SourceFor derives the source of an order-linked entry.
func SourceFor(takenFromPool bool) Source {
	if takenFromPool {
		return OpenPool
	}
	return Direct
}

// Entry is immutable once built. There are no setters.
type Entry struct {
	id        kernel.UUID
	companyID kernel.UUID
	orderID   *kernel.UUID
	entryType EntryType
	source    Source
	amount    kernel.Money
	comment   string
	createdBy *kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewEntryParams describes a movement to append.
type NewEntryParams struct {
	ID        kernel.UUID
	CompanyID kernel.UUID
	OrderID   *kernel.UUID
	Type      EntryType
	Source    Source
	Amount    kernel.Money
	Comment   string
	CreatedBy *kernel.UUID
	CreatedAt time.Time
}

// NewEntry validates the sign of the amount against the entry type: penalties
// are debits, payments and bonuses are credits, manual corrections go either way.
func NewEntry(p NewEntryParams) (*Entry, error) {
	e := &Entry{
		id:            p.ID,
		companyID:     p.CompanyID,
		orderID:       p.OrderID,
		entryType:     p.Type,
		source:        p.Source,
		amount:        p.Amount,
		comment:       strings.TrimSpace(p.Comment),
		createdBy:     p.CreatedBy,
		createdAt:     p.CreatedAt,
		isConstructed: true,
	}

	_, typeErr := ParseEntryType(string(p.Type))
	_, sourceErr := ParseSource(string(p.Source))
	if err := errors.Join(
		p.ID.Validate(),
		p.CompanyID.Validate(),
		typeErr,
		sourceErr,
		validateAmount(p.Type, p.Amount),
	); err != nil {
		return nil, err
	}
	return e, nil
}

func validateAmount(t EntryType, amount kernel.Money) error {
	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("amount_eur", errors.New("amount must not be zero"))
	}
	switch t {
	case Penalty:
		if amount.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("amount_eur", fmt.Errorf("penalty %s must be negative", amount))
		}
	case BasePayment, BonusCredit:
		if amount.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("amount_eur", fmt.Errorf("%s %s must be positive", t, amount))
		}
	}
	return nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) CompanyID() kernel.UUID {
	return e.companyID
}

func (e *Entry) OrderID() *kernel.UUID {
	return e.orderID
}

func (e *Entry) Type() EntryType {
	return e.entryType
}

func (e *Entry) Source() Source {
	return e.source
}

// Amount is signed: negative debits, positive credits.
func (e *Entry) Amount() kernel.Money {
	return e.amount
}

func (e *Entry) Comment() string {
	return e.comment
}

func (e *Entry) CreatedBy() *kernel.UUID {
	return e.createdBy
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
