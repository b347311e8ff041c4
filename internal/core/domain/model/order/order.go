package order

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Customer is the person at the installation address.
type Customer struct {
	name    string
	address string
	phone   string
}

func NewCustomer(name, address, phone string) (Customer, error) {
	c := Customer{
		name:    strings.TrimSpace(name),
		address: strings.TrimSpace(address),
		phone:   strings.TrimSpace(phone),
	}
	if c.name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer_name")
	}
	if c.address == "" {
		return Customer{}, errs.NewValueIsRequiredError("address")
	}
	return c, nil
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Address() string {
	return c.address
}

func (c Customer) Phone() string {
	return c.phone
}

// Payout is what a company earns when it finishes an order.
type Payout struct {
	Base  kernel.Money
	Bonus kernel.Money
}

// Order is an installation order, the aggregate root driven by the lifecycle engine.
//
// Invariants:
//   - currentCompany is set exactly when the status is held (assigned and later)
//   - bonusPot never goes negative and is emptied on finish
//   - a negative outcome always carries a complete reason
type Order struct {
	id             kernel.UUID
	number         string
	customer       Customer
	schedule       Schedule
	status         Status
	currentCompany *kernel.UUID
	reason         *Reason
	basePrice      kernel.Money
	bonusPot       kernel.Money
	takenFromPool  bool
	createdBy      *kernel.UUID
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOrder creates an order in the inbox with an empty bonus pot.
func NewOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	schedule Schedule,
	basePrice kernel.Money,
	createdBy *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Inbox,
		bonusPot:      kernel.ZeroMoney(),
		createdBy:     createdBy,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setSchedule(schedule),
		o.setBasePrice(basePrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID             kernel.UUID
	Number         string
	Customer       Customer
	Schedule       Schedule
	Status         Status
	CurrentCompany *kernel.UUID
	Reason         *Reason
	BasePrice      kernel.Money
	BonusPot       kernel.Money
	TakenFromPool  bool
	CreatedBy      *kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreOrder rebuilds an order from storage, re-checking the invariants.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		currentCompany: p.CurrentCompany,
		reason:         p.Reason,
		bonusPot:       p.BonusPot,
		takenFromPool:  p.TakenFromPool,
		createdBy:      p.CreatedBy,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setCustomer(p.Customer),
		o.setSchedule(p.Schedule),
		o.setBasePrice(p.BasePrice),
		o.setStatus(p.Status),
	); err != nil {
		return nil, err
	}
	if o.bonusPot.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("bonus_pot_eur", o.bonusPot, "0.00", "unbounded")
	}
	if o.status.IsNegativeOutcome() {
		if o.reason == nil {
			return nil, errs.NewValueIsRequiredError("reason")
		}
		if err := o.reason.ValidateComplete(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) Schedule() Schedule {
	return o.schedule
}

func (o *Order) Status() Status {
	return o.status
}

// CurrentCompany returns the holder, or nil while the order is unheld.
func (o *Order) CurrentCompany() *kernel.UUID {
	return o.currentCompany
}

// Reason is nil until a holder or dispatcher records one.
func (o *Order) Reason() *Reason {
	return o.reason
}

func (o *Order) BasePrice() kernel.Money {
	return o.basePrice
}

func (o *Order) BonusPot() kernel.Money {
	return o.bonusPot
}

func (o *Order) TakenFromPool() bool {
	return o.takenFromPool
}

func (o *Order) CreatedBy() *kernel.UUID {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// InstallAt is the scheduled start of the installation in loc.
func (o *Order) InstallAt(loc *time.Location) time.Time {
	return o.schedule.InstallAt(loc)
}

// IsHeldBy reports whether companyID is the current holder.
func (o *Order) IsHeldBy(companyID kernel.UUID) bool {
	return o.currentCompany != nil && o.currentCompany.IsEqual(companyID)
}

// Assign hands an inbox or pooled order directly to a company. A direct
// assignment clears the taken-from-pool flag of any earlier custody.
func (o *Order) Assign(companyID kernel.UUID, now time.Time) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.currentCompany = &companyID
	o.takenFromPool = false
	o.updatedAt = now
	return nil
}

// TakeFromPool claims a pooled order. Any status other than open_pool means
// someone else got there first.
func (o *Order) TakeFromPool(companyID kernel.UUID, now time.Time) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	if o.status != OpenPool {
		return errs.NewAlreadyTakenError(o.id)
	}

	o.status = Assigned
	o.currentCompany = &companyID
	o.takenFromPool = true
	o.updatedAt = now
	return nil
}

// Publish moves an inbox order into the open pool.
func (o *Order) Publish(now time.Time) error {
	newStatus, err := o.status.Publish()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Reject returns the order to the pool. A positive penalty paid by the
// rejecting company is added to the bonus pot.
func (o *Order) Reject(companyID kernel.UUID, penalty kernel.Money, now time.Time) error {
	if err := o.checkHolder(companyID); err != nil {
		return err
	}
	if o.status == Finished {
		return errs.NewAlreadyFinishedError(o.id)
	}
	if penalty.IsNegative() {
		return errs.NewValueIsOutOfRangeError("penalty_eur", penalty, "0.00", "unbounded")
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	if penalty.IsPositive() {
		o.bonusPot = o.bonusPot.Add(penalty)
	}
	o.status = newStatus
	o.currentCompany = nil
	o.reason = nil
	o.updatedAt = now
	return nil
}

// Start marks the installation as under way.
func (o *Order) Start(companyID kernel.UUID, now time.Time) error {
	if err := o.checkHolder(companyID); err != nil {
		return err
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Finish completes the order and empties the bonus pot into the payout.
func (o *Order) Finish(companyID kernel.UUID, now time.Time) (Payout, error) {
	if err := o.checkHolder(companyID); err != nil {
		return Payout{}, err
	}
	if o.status == Finished {
		return Payout{}, errs.NewAlreadyFinishedError(o.id)
	}

	newStatus, err := o.status.Finish()
	if err != nil {
		return Payout{}, err
	}

	payout := Payout{Base: o.basePrice, Bonus: o.bonusPot}
	o.status = newStatus
	o.bonusPot = kernel.ZeroMoney()
	o.updatedAt = now
	return payout, nil
}

// ReportOutcome closes a held order as not_possible or storno.
func (o *Order) ReportOutcome(companyID kernel.UUID, outcome Status, reason Reason, now time.Time) error {
	if err := o.checkHolder(companyID); err != nil {
		return err
	}
	if o.status == Finished {
		return errs.NewAlreadyFinishedError(o.id)
	}
	if err := reason.ValidateComplete(); err != nil {
		return err
	}

	newStatus, err := o.status.Fail(outcome)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.reason = &reason
	o.updatedAt = now
	return nil
}

// RecordReason attaches or replaces the reason on a held order without
// changing its status. A negative outcome keeps requiring a complete reason.
func (o *Order) RecordReason(reason Reason, now time.Time) error {
	if !o.status.IsHeld() {
		return errs.NewInvalidStateError("record reason", o.status.String())
	}
	if _, err := ParseReasonCategory(string(reason.category)); err != nil {
		return err
	}
	if o.status.IsNegativeOutcome() {
		if err := reason.ValidateComplete(); err != nil {
			return err
		}
	}

	o.reason = &reason
	o.updatedAt = now
	return nil
}

func (o *Order) checkHolder(companyID kernel.UUID) error {
	if !o.IsHeldBy(companyID) {
		return errs.NewNotOwnerError(o.id, companyID)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.name == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setSchedule(schedule Schedule) error {
	if schedule.year == 0 {
		return errs.NewValueIsRequiredError("schedule")
	}
	o.schedule = schedule
	return nil
}

func (o *Order) setBasePrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("base_price_eur", price, "0.00", "unbounded")
	}
	o.basePrice = price
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveCompany(o.currentCompany != nil); err != nil {
		return err
	}
	o.status = status
	return nil
}
