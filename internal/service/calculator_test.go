package service

import (
	"testing"

	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func uspsLabel(employeeID uuid.UUID, count int) model.USPSTransaction {
	l := model.USPSTransaction{EmployeeID: employeeID, LabelCount: count}
	l.IsActive = true
	return l
}

func TestCalculateSalary(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	rule := BonusRule{Threshold: 500, PerLabel: dec("0.50")}
	inactive := uspsLabel(alice, 1000)
	inactive.IsActive = false

	cases := []struct {
		name      string
		labels    []model.USPSTransaction
		wantCount int
		wantBonus string
		wantTotal string
	}{
		{"no labels", nil, 0, "0", "2000"},
		{"below threshold", []model.USPSTransaction{uspsLabel(alice, 300), uspsLabel(alice, 150)}, 450, "0", "2000"},
		{"exactly threshold", []model.USPSTransaction{uspsLabel(alice, 500)}, 500, "0", "2000"},
		{"above threshold", []model.USPSTransaction{uspsLabel(alice, 400), uspsLabel(alice, 200)}, 600, "50", "2050"},
		{"ignores others and inactive", []model.USPSTransaction{uspsLabel(alice, 510), uspsLabel(bob, 900), inactive}, 510, "5", "2005"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateSalary(tc.labels, alice, dec("2000"), rule)
			if got.Labels != tc.wantCount {
				t.Fatalf("labels = %d, want %d", got.Labels, tc.wantCount)
			}
			if !got.Bonus.Equal(dec(tc.wantBonus)) {
				t.Fatalf("bonus = %s, want %s", got.Bonus, tc.wantBonus)
			}
			if !got.Total.Equal(dec(tc.wantTotal)) {
				t.Fatalf("total = %s, want %s", got.Total, tc.wantTotal)
			}
			if got.EmployeeID != alice {
				t.Fatalf("employee id not carried")
			}
		})
	}
}

func TestCalculateResellerProfit(t *testing.T) {
	acme := model.ResellerClient{Name: "Acme", ClientRate: dec("5"), VendorRate: dec("3")}
	acme.ID = uuid.New()
	acme.IsActive = true
	globex := model.ResellerClient{Name: "Globex", ClientRate: dec("4.25"), VendorRate: dec("3.75")}
	globex.ID = uuid.New()
	globex.IsActive = true

	label := func(client uuid.UUID, n int, active bool) model.ResellerLabel {
		l := model.ResellerLabel{ClientID: client, LabelCount: n}
		l.IsActive = active
		return l
	}
	payment := model.ResellerTransaction{ClientID: acme.ID, Amount: dec("30")}
	payment.IsActive = true

	dash := CalculateResellerProfit(
		[]model.ResellerClient{globex, acme},
		[]model.ResellerLabel{label(acme.ID, 6, true), label(acme.ID, 4, true), label(acme.ID, 99, false), label(globex.ID, 8, true)},
		[]model.ResellerTransaction{payment},
	)

	if len(dash.Clients) != 2 {
		t.Fatalf("clients = %d", len(dash.Clients))
	}
	top := dash.Clients[0]
	if top.ClientID != acme.ID {
		t.Fatalf("expected Acme first by profit, got %s", top.ClientName)
	}
	if top.Labels != 10 || !top.ProfitPerLabel.Equal(dec("2")) || !top.Profit.Equal(dec("20")) {
		t.Fatalf("acme row = %+v", top)
	}
	if !top.Revenue.Equal(dec("50")) || !top.VendorCost.Equal(dec("30")) || !top.BalanceDue.Equal(dec("20")) {
		t.Fatalf("acme money = %+v", top)
	}
	if dash.TotalLabels != 18 || !dash.TotalProfit.Equal(dec("24")) {
		t.Fatalf("totals labels=%d profit=%s", dash.TotalLabels, dash.TotalProfit)
	}
	if !dash.TotalOutstanding.Equal(dec("54")) {
		t.Fatalf("outstanding = %s", dash.TotalOutstanding)
	}
}
