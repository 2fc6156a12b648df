package mapping

import (
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/models"
)

// ToModelMovement converts a domain CashMovement to its model shape
func ToModelMovement(d domain.CashMovement) models.CashMovement {
	return models.CashMovement{
		MovementID:           d.MovementID,
		RegisterID:           d.RegisterID,
		SessionID:            d.SessionID,
		MovementType:         models.MovementType(d.MovementType),
		Category:             d.Category,
		Amount:               d.Amount,
		Method:               string(d.Method),
		Description:          d.Description,
		Reference:            d.Reference,
		PatientID:            d.PatientID,
		InvoiceID:            d.InvoiceID,
		ExpenseID:            d.ExpenseID,
		DocumentType:         d.DocumentType,
		DocumentNumber:       d.DocumentNumber,
		OriginalMovementID:   d.OriginalMovementID,
		ReversedByMovementID: d.ReversedByMovementID,
		MovementDate:         d.MovementDate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model CashMovement to its domain shape
func ToDomainMovement(m models.CashMovement) domain.CashMovement {
	return domain.CashMovement{
		MovementID:           m.MovementID,
		RegisterID:           m.RegisterID,
		SessionID:            m.SessionID,
		MovementType:         domain.MovementType(m.MovementType),
		Category:             m.Category,
		Amount:               m.Amount,
		Method:               domain.PaymentMethod(m.Method),
		Description:          m.Description,
		Reference:            m.Reference,
		PatientID:            m.PatientID,
		InvoiceID:            m.InvoiceID,
		ExpenseID:            m.ExpenseID,
		DocumentType:         m.DocumentType,
		DocumentNumber:       m.DocumentNumber,
		OriginalMovementID:   m.OriginalMovementID,
		ReversedByMovementID: m.ReversedByMovementID,
		MovementDate:         m.MovementDate,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model movements to domain movements
func ToDomainMovementSlice(ms []models.CashMovement) []domain.CashMovement {
	ds := make([]domain.CashMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
