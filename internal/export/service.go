// Package export produces XLSX workbooks from the movement ledger for
// back-office spreadsheets.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
)

// Service is a tiny façade over the movement repository that renders XLSX bytes.
type Service struct {
	movementRepo portsrepo.MovementRepositoryFacade
	logger       *slog.Logger
}

func NewService(movementRepo portsrepo.MovementRepositoryFacade, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{movementRepo: movementRepo, logger: logger}
}

// exportPageSize bounds each repository fetch while paging through the ledger.
const exportPageSize = 500

// ExportMovementsXLSX returns an XLSX workbook (as bytes) for the given date
// window and optional register.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
func (s *Service) ExportMovementsXLSX(ctx context.Context, registerID *string, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}

	filter := portsrepo.ListMovementsFilter{
		RegisterID: registerID,
		DateFrom:   fromDate,
		DateTo:     toDate,
	}

	// Page through the ledger; the repository caps each fetch.
	movements := []domain.CashMovement{}
	var nextToken *string
	for {
		page, token, err := s.movementRepo.ListMovements(ctx, filter, exportPageSize, nextToken)
		if err != nil {
			return nil, fmt.Errorf("query movements: %w", err)
		}
		movements = append(movements, page...)
		if token == nil {
			break
		}
		nextToken = token
	}

	f := excelize.NewFile()
	const sheet = "Movements"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on the data.
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Date",
		"Register",
		"Type",
		"Category",
		"Amount",
		"Payment Method",
		"Description",
		"Reference",
		"Document",
		"Reversal Of",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, m := range movements {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, m.MovementDate.Format("2006-01-02 15:04"))
		write(2, m.RegisterID)
		write(3, string(m.MovementType))
		write(4, m.Category)
		// Export the signed amount so the column sums to the net flow.
		amount, _ := m.SignedAmount().Float64()
		write(5, amount)
		write(6, string(m.Method))
		write(7, m.Description)
		write(8, m.Reference)
		document := m.DocumentType
		if m.DocumentNumber != "" {
			document = fmt.Sprintf("%s %s", m.DocumentType, m.DocumentNumber)
		}
		write(9, document)
		if m.OriginalMovementID != nil {
			write(10, *m.OriginalMovementID)
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // date
	_ = f.SetColWidth(sheet, "B", "B", 36) // register
	_ = f.SetColWidth(sheet, "C", "D", 16) // type, category
	_ = f.SetColWidth(sheet, "E", "F", 14) // amount, method
	_ = f.SetColWidth(sheet, "G", "G", 48) // description
	_ = f.SetColWidth(sheet, "H", "J", 24) // reference, document, reversal

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(movements),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
