package mapping

import (
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/models"
)

// ToModelRegister converts a domain CashRegister to its model shape
func ToModelRegister(d domain.CashRegister) models.CashRegister {
	return models.CashRegister{
		RegisterID:        d.RegisterID,
		Name:              d.Name,
		Description:       d.Description,
		Location:          d.Location,
		ResponsibleUserID: d.ResponsibleUserID,
		InitialAmount:     d.InitialAmount,
		CurrentBalance:    d.CurrentBalance,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRegister converts a model CashRegister to its domain shape
func ToDomainRegister(m models.CashRegister) domain.CashRegister {
	return domain.CashRegister{
		RegisterID:        m.RegisterID,
		Name:              m.Name,
		Description:       m.Description,
		Location:          m.Location,
		ResponsibleUserID: m.ResponsibleUserID,
		InitialAmount:     m.InitialAmount,
		CurrentBalance:    m.CurrentBalance,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
