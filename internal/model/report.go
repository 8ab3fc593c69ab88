package model

import "github.com/shopspring/decimal"

// SalesTotal is the response of the sales report endpoints.
type SalesTotal struct {
	Total decimal.Decimal `json:"total"`
}

// EmployeeActivity summarises the orders an employee handled.
type EmployeeActivity struct {
	OrdersHandled int64           `json:"orders_handled"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}
