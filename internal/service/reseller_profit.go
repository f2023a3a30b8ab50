package service

import (
	"sort"

	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculateResellerProfit builds the per-client profit table and totals.
// profit_per_label = client_rate - vendor_rate, profit = labels * profit_per_label,
// balance due = revenue - payments received.
func CalculateResellerProfit(clients []model.ResellerClient, labels []model.ResellerLabel, payments []model.ResellerTransaction) model.ResellerDashboard {
	labelCount := make(map[uuid.UUID]int)
	for _, l := range labels {
		if l.IsActive {
			labelCount[l.ClientID] += l.LabelCount
		}
	}
	received := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range payments {
		if p.IsActive {
			received[p.ClientID] = received[p.ClientID].Add(p.Amount)
		}
	}

	dash := model.ResellerDashboard{
		Clients:          make([]model.ClientProfit, 0, len(clients)),
		TotalRevenue:     decimal.Zero,
		TotalCost:        decimal.Zero,
		TotalProfit:      decimal.Zero,
		TotalReceived:    decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}

	for i := range clients {
		c := &clients[i]
		n := decimal.NewFromInt(int64(labelCount[c.ID]))
		revenue := c.ClientRate.Mul(n)
		cost := c.VendorRate.Mul(n)
		got := received[c.ID]

		row := model.ClientProfit{
			ClientID:       c.ID,
			ClientName:     c.Name,
			ClientRate:     c.ClientRate,
			VendorRate:     c.VendorRate,
			Labels:         labelCount[c.ID],
			ProfitPerLabel: c.ProfitPerLabel(),
			Revenue:        revenue,
			VendorCost:     cost,
			Profit:         c.ProfitPerLabel().Mul(n),
			AmountReceived: got,
			BalanceDue:     revenue.Sub(got),
		}
		dash.Clients = append(dash.Clients, row)

		dash.TotalLabels += row.Labels
		dash.TotalRevenue = dash.TotalRevenue.Add(row.Revenue)
		dash.TotalCost = dash.TotalCost.Add(row.VendorCost)
		dash.TotalProfit = dash.TotalProfit.Add(row.Profit)
		dash.TotalReceived = dash.TotalReceived.Add(row.AmountReceived)
		dash.TotalOutstanding = dash.TotalOutstanding.Add(row.BalanceDue)
	}

	sort.SliceStable(dash.Clients, func(i, j int) bool {
		return dash.Clients[i].Profit.GreaterThan(dash.Clients[j].Profit)
	})
	return dash
}
