package memory

import (
	"time"

	"github.com/ItamarS3917/smart-food-manager/internal/domain/ingredient"
)

// Statistic keys returned by InventoryStatistics and WasteStatistics.
const (
	StatTotalValue    = "totalValue"
	StatTotalItems    = "totalItems"
	StatExpiredCount  = "expiredCount"
	StatExpiredValue  = "expiredValue"
	StatLowStockCount = "lowStockCount"
	StatWasteCount    = "wasteCount"
	StatWasteValue    = "wasteValue"
)

// TotalInventoryValue sums the cost of every stored ingredient
func (r *Repository) TotalInventoryValue() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total float64
	for _, ing := range r.ingredients {
		total += ing.Cost()
	}
	return total
}

// InventoryStatistics returns named aggregates over the current ingredient
// stock: total value, item count, expired count and low-stock count.
func (r *Repository) InventoryStatistics() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := map[string]float64{
		StatTotalValue:    0,
		StatTotalItems:    float64(len(r.ingredients)),
		StatExpiredCount:  0,
		StatLowStockCount: 0,
	}
	for _, ing := range r.ingredients {
		stats[StatTotalValue] += ing.Cost()
		if ing.IsExpired() {
			stats[StatExpiredCount]++
		}
		if ing.IsLowQuantity() {
			stats[StatLowStockCount]++
		}
	}
	return stats
}

// RecordWaste logs an ingredient discarded while expired. Collaborators call
// this when they remove spoiled stock; the repository itself never records
// waste on its own.
func (r *Repository) RecordWaste(ing *ingredient.Ingredient) error {
	if ing == nil {
		return ErrNilEntity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.wasteLog = append(r.wasteLog, WasteRecord{
		IngredientID: ing.ID(),
		Name:         ing.Name(),
		Value:        ing.Cost(),
		RecordedAt:   time.Now(),
	})
	return nil
}

// WasteStatistics returns named aggregates over spoilage: counts and value of
// currently expired stock, plus totals from the externally recorded waste
// log.
func (r *Repository) WasteStatistics() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := map[string]float64{
		StatExpiredCount: 0,
		StatExpiredValue: 0,
		StatWasteCount:   float64(len(r.wasteLog)),
		StatWasteValue:   0,
	}
	for _, ing := range r.ingredients {
		if ing.IsExpired() {
			stats[StatExpiredCount]++
			stats[StatExpiredValue] += ing.Cost()
		}
	}
	for _, record := range r.wasteLog {
		stats[StatWasteValue] += record.Value
	}
	return stats
}
