package report

import (
	"fmt"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/xuri/excelize/v2"
)

const walletSheet = "Wallet"

// WalletStatementGenerator writes a company's ledger as a spreadsheet with a
// running balance column.
type WalletStatementGenerator struct{}

func NewWalletStatementGenerator() *WalletStatementGenerator {
	return &WalletStatementGenerator{}
}

func (g *WalletStatementGenerator) Generate(w queries.Wallet) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", walletSheet); err != nil {
		return nil, err
	}

	set := func(cell string, value any) {
		_ = file.SetCellValue(walletSheet, cell, value)
	}

	set("A1", "Company")
	set("B1", w.CompanyName)
	set("A2", "Balance (EUR)")
	set("B2", w.Balance.Decimal().InexactFloat64())

	const headerRow = 4
	for i, header := range []string{"Date", "Order", "Type", "Source", "Amount (EUR)", "Running (EUR)", "Comment"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		set(cell, header)
	}

	running := kernel.ZeroMoney()
	for i, e := range w.Entries {
		r := headerRow + 1 + i
		running = running.Add(e.Amount)
		set(fmt.Sprintf("A%d", r), e.CreatedAt.Format("2006-01-02 15:04"))
		set(fmt.Sprintf("B%d", r), e.OrderNumber)
		set(fmt.Sprintf("C%d", r), e.Type)
		set(fmt.Sprintf("D%d", r), e.Source)
		set(fmt.Sprintf("E%d", r), e.Amount.Decimal().InexactFloat64())
		set(fmt.Sprintf("F%d", r), running.Decimal().InexactFloat64())
		set(fmt.Sprintf("G%d", r), e.Comment)
	}

	_ = file.SetColWidth(walletSheet, "A", "A", 18)
	_ = file.SetColWidth(walletSheet, "B", "D", 14)
	_ = file.SetColWidth(walletSheet, "E", "F", 14)
	_ = file.SetColWidth(walletSheet, "G", "G", 40)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render wallet statement: %w", err)
	}
	return buf.Bytes(), nil
}
