package mapping

import (
	"encoding/json"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/models"
)

// ToModelSession converts a domain CashSession to its model shape, marshalling
// the denomination breakdown to raw JSON for the JSONB column.
func ToModelSession(d domain.CashSession) (models.CashSession, error) {
	var denoms []byte
	if d.Denominations != nil {
		var err error
		denoms, err = json.Marshal(d.Denominations)
		if err != nil {
			return models.CashSession{}, err
		}
	}
	return models.CashSession{
		SessionID:        d.SessionID,
		RegisterID:       d.RegisterID,
		CashierUserID:    d.CashierUserID,
		SessionNumber:    d.SessionNumber,
		Status:           models.SessionStatus(d.Status),
		WorkingDate:      d.WorkingDate,
		OpeningBalance:   d.OpeningBalance,
		TotalIncome:      d.TotalIncome,
		TotalExpense:     d.TotalExpense,
		ActualClosing:    d.ActualClosing,
		ExpectedClosing:  d.ExpectedClosing,
		Difference:       d.Difference,
		Denominations:    denoms,
		Notes:            d.Notes,
		DiscrepancyNotes: d.DiscrepancyNotes,
		OpenedAt:         d.OpenedAt,
		ClosedAt:         d.ClosedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainSession converts a model CashSession to its domain shape.
func ToDomainSession(m models.CashSession) (domain.CashSession, error) {
	var denoms domain.Denominations
	if len(m.Denominations) > 0 {
		if err := json.Unmarshal(m.Denominations, &denoms); err != nil {
			return domain.CashSession{}, err
		}
	}
	return domain.CashSession{
		SessionID:        m.SessionID,
		RegisterID:       m.RegisterID,
		CashierUserID:    m.CashierUserID,
		SessionNumber:    m.SessionNumber,
		Status:           domain.SessionStatus(m.Status),
		WorkingDate:      m.WorkingDate,
		OpeningBalance:   m.OpeningBalance,
		TotalIncome:      m.TotalIncome,
		TotalExpense:     m.TotalExpense,
		ActualClosing:    m.ActualClosing,
		ExpectedClosing:  m.ExpectedClosing,
		Difference:       m.Difference,
		Denominations:    denoms,
		Notes:            m.Notes,
		DiscrepancyNotes: m.DiscrepancyNotes,
		OpenedAt:         m.OpenedAt,
		ClosedAt:         m.ClosedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}, nil
}
