package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Requests.

type OrderFieldsRequest struct {
	Number       string             `json:"order_number"`
	CustomerName string             `json:"customer_name"`
	Address      string             `json:"address"`
	Phone        string             `json:"phone"`
	Date         openapi_types.Date `json:"date"`
	TimeFrom     string             `json:"time_from"`
	TimeTo       string             `json:"time_to"`
	BasePriceEUR string             `json:"base_price_eur"`
}

func (r OrderFieldsRequest) toFields() (commands.OrderFields, error) {
	price, err := kernel.MoneyFromString(r.BasePriceEUR)
	if err != nil {
		return commands.OrderFields{}, err
	}
	return commands.OrderFields{
		Number:       r.Number,
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Phone:        r.Phone,
		Date:         r.Date.Time,
		TimeFrom:     r.TimeFrom,
		TimeTo:       r.TimeTo,
		BasePrice:    price,
	}, nil
}

type CompanyRefRequest struct {
	CompanyID *openapi_types.UUID `json:"company_id"`
}

type RejectRequest struct {
	CompanyID *openapi_types.UUID `json:"company_id"`
	Reason    string              `json:"reason"`
}

type ReasonRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type DeliveryRequest struct {
	Status         string              `json:"status"`
	Carrier        string              `json:"carrier"`
	TrackingNumber string              `json:"tracking_number"`
	PlannedDate    *openapi_types.Date `json:"planned_date"`
	DeliveredDate  *openapi_types.Date `json:"delivered_date"`
	Notes          string              `json:"notes"`
}

type NewCompanyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LedgerEntryRequest struct {
	OrderID   *openapi_types.UUID `json:"order_id"`
	Type      string              `json:"type"`
	Source    string              `json:"source"`
	AmountEUR string              `json:"amount_eur"`
	Comment   string              `json:"comment"`
}

// Responses.

type Created struct {
	ID string `json:"id"`
}

type OrderSummary struct {
	ID               string  `json:"id"`
	Number           string  `json:"order_number"`
	CustomerName     string  `json:"customer_name"`
	Address          string  `json:"address"`
	Date             string  `json:"date"`
	TimeFrom         string  `json:"time_from"`
	TimeTo           string  `json:"time_to"`
	Status           string  `json:"status"`
	CurrentCompanyID *string `json:"current_company_id"`
	BasePriceEUR     string  `json:"base_price_eur"`
	BonusPotEUR      string  `json:"bonus_pot_eur"`
	TakenFromPool    bool    `json:"taken_from_pool"`
}

type Reason struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	PhotoRef string `json:"photo_ref,omitempty"`
}

type Assignment struct {
	CompanyID      string     `json:"company_id"`
	CompanyName    string     `json:"company_name"`
	AssignedAt     time.Time  `json:"assigned_at"`
	UnassignedAt   *time.Time `json:"unassigned_at"`
	UnassignReason string     `json:"unassign_reason,omitempty"`
}

type Delivery struct {
	Status         string  `json:"status"`
	Carrier        string  `json:"carrier"`
	TrackingNumber string  `json:"tracking_number"`
	PlannedDate    *string `json:"planned_date"`
	DeliveredDate  *string `json:"delivered_date"`
	Notes          string  `json:"notes"`
}

type OrderDetails struct {
	OrderSummary
	Phone              string       `json:"phone"`
	CurrentCompanyName string       `json:"current_company_name,omitempty"`
	Reason             *Reason      `json:"reason"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	Assignments        []Assignment `json:"assignments"`
	Delivery           *Delivery    `json:"delivery"`
}

type WalletEntry struct {
	ID          string    `json:"id"`
	OrderID     *string   `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	AmountEUR   string    `json:"amount_eur"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

type Wallet struct {
	CompanyID   string        `json:"company_id"`
	CompanyName string        `json:"company_name"`
	BalanceEUR  string        `json:"balance_eur"`
	Entries     []WalletEntry `json:"entries"`
}

type CompanyRating struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Rating            decimal.Decimal `json:"rating"`
	OrdersTotal       int             `json:"orders_total"`
	OrdersFinished    int             `json:"orders_finished"`
	CompanyFaultCount int             `json:"company_fault_count"`
	NotPossibleCount  int             `json:"not_possible_count"`
	StornoCount       int             `json:"storno_count"`
}

type Document struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	SHA256    string    `json:"sha256"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanyBalance struct {
	CompanyID     string `json:"company_id"`
	CompanyName   string `json:"company_name"`
	StoredEUR     string `json:"stored_eur"`
	ComputedEUR   string `json:"computed_eur"`
	DifferenceEUR string `json:"difference_eur"`
	Balanced      bool   `json:"balanced"`
}

type Reconciliation struct {
	Companies []CompanyBalance `json:"companies"`
	Drifting  int              `json:"drifting"`
}

const dateLayout = "2006-01-02"

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toOrderSummary(o queries.OrderSummary) OrderSummary {
	return OrderSummary{
		ID:               o.ID.String(),
		Number:           o.Number,
		CustomerName:     o.CustomerName,
		Address:          o.Address,
		Date:             o.Date.Format(dateLayout),
		TimeFrom:         o.TimeFrom,
		TimeTo:           o.TimeTo,
		Status:           o.Status,
		CurrentCompanyID: optionalID(o.CurrentCompanyID),
		BasePriceEUR:     o.BasePrice.String(),
		BonusPotEUR:      o.BonusPot.String(),
		TakenFromPool:    o.TakenFromPool,
	}
}

func toOrderSummaries(in []queries.OrderSummary) []OrderSummary {
	out := make([]OrderSummary, 0, len(in))
	for _, o := range in {
		out = append(out, toOrderSummary(o))
	}
	return out
}

func toOrderDetails(o queries.OrderDetails) OrderDetails {
	res := OrderDetails{
		OrderSummary:       toOrderSummary(o.OrderSummary),
		Phone:              o.Phone,
		CurrentCompanyName: o.CurrentCompanyName,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Assignments:        make([]Assignment, 0, len(o.Assignments)),
	}
	if o.Reason != nil {
		res.Reason = &Reason{Category: o.Reason.Category, Text: o.Reason.Text, PhotoRef: o.Reason.PhotoRef}
	}
	for _, a := range o.Assignments {
		res.Assignments = append(res.Assignments, Assignment{
			CompanyID:      a.CompanyID.String(),
			CompanyName:    a.CompanyName,
			AssignedAt:     a.AssignedAt,
			UnassignedAt:   a.UnassignedAt,
			UnassignReason: a.UnassignReason,
		})
	}
	if d := o.Delivery; d != nil {
		res.Delivery = &Delivery{
			Status:         d.Status,
			Carrier:        d.Carrier,
			TrackingNumber: d.TrackingNumber,
			PlannedDate:    optionalDate(d.PlannedDate),
			DeliveredDate:  optionalDate(d.DeliveredDate),
			Notes:          d.Notes,
		}
	}
	return res
}

func toWallet(w queries.Wallet) Wallet {
	res := Wallet{
		CompanyID:   w.CompanyID.String(),
		CompanyName: w.CompanyName,
		BalanceEUR:  w.Balance.String(),
		Entries:     make([]WalletEntry, 0, len(w.Entries)),
	}
	for _, e := range w.Entries {
		res.Entries = append(res.Entries, WalletEntry{
			ID:          e.ID.String(),
			OrderID:     optionalID(e.OrderID),
			OrderNumber: e.OrderNumber,
			Type:        e.Type,
			Source:      e.Source,
			AmountEUR:   e.Amount.String(),
			Comment:     e.Comment,
			CreatedAt:   e.CreatedAt,
		})
	}
	return res
}

func toCompanyRatings(in []queries.CompanyRating) []CompanyRating {
	out := make([]CompanyRating, 0, len(in))
	for _, r := range in {
		out = append(out, CompanyRating{
			ID:                r.ID.String(),
			Name:              r.Name,
			Rating:            r.Rating,
			OrdersTotal:       r.OrdersTotal,
			OrdersFinished:    r.OrdersFinished,
			CompanyFaultCount: r.CompanyFaultCount,
			NotPossibleCount:  r.NotPossibleCount,
			StornoCount:       r.StornoCount,
		})
	}
	return out
}

func toDocuments(in []queries.DocumentSummary) []Document {
	out := make([]Document, 0, len(in))
	for _, d := range in {
		out = append(out, Document{
			ID:        d.ID.String(),
			Source:    d.Source,
			Filename:  d.Filename,
			SizeBytes: d.SizeBytes,
			SHA256:    d.SHA256,
			CreatedAt: d.CreatedAt,
		})
	}
	return out
}

func toReconciliation(r queries.ReconciliationReport) Reconciliation {
	res := Reconciliation{
		Companies: make([]CompanyBalance, 0, len(r.Companies)),
		Drifting:  len(r.Drifting()),
	}
	for _, c := range r.Companies {
		res.Companies = append(res.Companies, CompanyBalance{
			CompanyID:     c.CompanyID.String(),
			CompanyName:   c.CompanyName,
			StoredEUR:     c.Stored.String(),
			ComputedEUR:   c.Computed.String(),
			DifferenceEUR: c.Difference().String(),
			Balanced:      c.IsBalanced(),
		})
	}
	return res
}
