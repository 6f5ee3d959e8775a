package mapping

import (
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
)

// ToModelCatalogItem converts a domain CatalogItem to a model CatalogItem
func ToModelCatalogItem(d domain.CatalogItem) models.CatalogItem {
	return models.CatalogItem{
		ItemID:       d.ItemID,
		SKU:          d.SKU,
		Name:         d.Name,
		Kind:         string(d.Kind),
		UnitPrice:    d.UnitPrice,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields:  models.AuditFields(d.AuditFields),
	}
}

// ToDomainCatalogItem converts a model CatalogItem to a domain CatalogItem. Components are attached by the caller.
func ToDomainCatalogItem(m models.CatalogItem) domain.CatalogItem {
	return domain.CatalogItem{
		ItemID:       m.ItemID,
		SKU:          m.SKU,
		Name:         m.Name,
		Kind:         domain.ItemKind(m.Kind),
		UnitPrice:    m.UnitPrice,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields:  domain.AuditFields(m.AuditFields),
	}
}

func ToDomainComboComponent(m models.ComboComponent) domain.ComboComponent {
	return domain.ComboComponent{
		ComboItemID:     m.ComboItemID,
		ComponentItemID: m.ComponentItemID,
		Quantity:        m.Quantity,
	}
}

func ToDomainInventory(m models.Inventory) domain.InventoryRecord {
	return domain.InventoryRecord{
		ItemID:           m.ItemID,
		Quantity:         m.Quantity,
		ReservedQuantity: m.ReservedQuantity,
		LastUpdatedAt:    m.LastUpdatedAt,
	}
}
