package client

import (
	"strings"

	"shopsync/feature/shopify/models"

	"github.com/shopspring/decimal"
)

// mapFact builds one InventoryFact from a product, a variant and one
// inventory-level fragment. Quantity names outside the fixed vocabulary are
// ignored; a repeated name overwrites the earlier value; absent names leave
// the field at 0.
func mapFact(store string, product *productNode, variant *variantNode, level *inventoryLevel) models.InventoryFact {
	fact := models.InventoryFact{
		Store:           store,
		SKU:             variant.SKU,
		EAN:             variant.Barcode,
		ProductID:       extractGIDTail(product.ID),
		VariantID:       extractGIDTail(variant.ID),
		InventoryItemID: extractGIDTail(variant.InventoryItem.ID),
		Location:        level.Location.Name,
		Price:           parsePrice(variant.Price),
		CompareAtPrice:  parsePrice(variant.CompareAtPrice),
	}

	for _, qty := range level.Quantities {
		switch strings.ToLower(qty.Name) {
		case "available":
			fact.Available = qty.Quantity
		case "incoming":
			fact.Incoming = qty.Quantity
		case "reserved":
			fact.Reserved = qty.Quantity
		case "damaged":
			fact.Damaged = qty.Quantity
		case "on_hand":
			fact.OnHand = qty.Quantity
		}
	}

	return fact
}

// mapPriceFact builds one InventoryFact from a variant alone, for the
// price-only flavor. No location fan-out, no quantities.
func mapPriceFact(store string, product *productNode, variant *variantNode) models.InventoryFact {
	return models.InventoryFact{
		Store:          store,
		SKU:            variant.SKU,
		EAN:            variant.Barcode,
		ProductID:      extractGIDTail(product.ID),
		VariantID:      extractGIDTail(variant.ID),
		Price:          parsePrice(variant.Price),
		CompareAtPrice: parsePrice(variant.CompareAtPrice),
	}
}

// extractGIDTail reduces a compound global id such as
// "gid://shopify/Product/12345" to its trailing segment ("12345").
func extractGIDTail(gid string) string {
	if gid == "" {
		return ""
	}
	if idx := strings.LastIndex(gid, "/"); idx >= 0 {
		return gid[idx+1:]
	}
	return gid
}

// parsePrice converts the API's string money value to a nullable decimal.
// Absent or malformed values map to null rather than zero.
func parsePrice(raw *string) decimal.NullDecimal {
	if raw == nil || *raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
