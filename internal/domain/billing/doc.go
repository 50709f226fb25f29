// Package billing provides the money side of the aggregated views: client
// invoices with their payment progress, developer payment vouchers, and the
// unpaid-work summaries that feed voucher creation.
//
// Everything here is computed from records fetched out of the upstream
// WorkHub API on each request; nothing is persisted locally. Monetary
// amounts are decimal.Decimal throughout, never floats.
package billing
