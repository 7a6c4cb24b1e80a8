package domain

import "github.com/shopspring/decimal"

// DashboardSummary aggregates totals across all accounts and cashflows.
type DashboardSummary struct {
	TotalAccounts     int64           `json:"total_accounts"`
	TotalCashflows    int64           `json:"total_cashflows"`
	TotalCreditsCount int64           `json:"total_credits_count"`
	TotalDebitsCount  int64           `json:"total_debits_count"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalCredits      decimal.Decimal `json:"total_credits"`
	TotalDebits       decimal.Decimal `json:"total_debits"`
}
