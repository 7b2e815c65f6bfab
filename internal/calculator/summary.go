package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/aquaflow/internal/models"
)

// Summarize aggregates billed and unpaid totals and monthly consumption
// across all customers. Months are ordered oldest first.
func Summarize(customers []models.Customer) models.Summary {
	revenue := decimal.Zero
	unpaid := decimal.Zero
	monthly := make(map[string]decimal.Decimal)

	for _, c := range customers {
		for _, r := range c.Readings {
			amount := decimal.NewFromFloat(r.Amount)
			revenue = revenue.Add(amount)
			if r.Status == models.StatusUnpaid {
				unpaid = unpaid.Add(amount)
			}
			month := r.Date.UTC().Format("2006-01")
			monthly[month] = monthly[month].Add(decimal.NewFromFloat(r.Consumption))
		}
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	usage := make([]models.MonthlyUsage, 0, len(months))
	for _, m := range months {
		usage = append(usage, models.MonthlyUsage{
			Month:       m,
			Consumption: monthly[m].InexactFloat64(),
		})
	}

	return models.Summary{
		TotalRevenue: revenue.Round(CurrencyPlaces).InexactFloat64(),
		TotalUnpaid:  unpaid.Round(CurrencyPlaces).InexactFloat64(),
		ActiveMeters: len(customers),
		Monthly:      usage,
	}
}

// Invoices flattens every reading into an invoice, newest first.
// Readings with the same date keep customer and reading order.
func Invoices(customers []models.Customer) []models.Invoice {
	invoices := make([]models.Invoice, 0)
	for _, c := range customers {
		for _, r := range c.Readings {
			invoices = append(invoices, models.Invoice{
				Reading:      r,
				CustomerID:   c.ID,
				CustomerName: c.Name,
				MeterNumber:  c.MeterNumber,
			})
		}
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})
	return invoices
}
