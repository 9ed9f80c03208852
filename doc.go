// Package carteira provides the accounting and tax engine for a personal
// investment portfolio split between fixed-income and variable-income
// holdings, under Brazilian capital-gains rules.
//
// The core functionalities include:
//   - Ledger Management: recording all monetary events (deposits, purchases,
//     sales, dividends, transfers and tax debits) in an immutable,
//     chronological, append-only record from which cash balances and share
//     positions are reconstructed by pure folds.
//   - Valuation: compounding fixed-income principals under the pre-fixed,
//     post-fixed (CDI/SELIC) and hybrid rate regimes with the
//     252-business-day convention, and marking variable-income positions at
//     their latest traded price through a pluggable price oracle.
//   - Capital-Gains Tax: monthly, per-subtype aggregation of realized
//     results with cross-month loss carryforward, exemption thresholds on
//     monthly gross sales, and idempotent month reconciliation.
//   - Dividend Pendencies: detecting closed months in which a real-estate
//     fund position was held but no dividend was recorded yet.
//   - Data Persistence: whole-document aggregates (ledger + positions)
//     loaded and replaced through a Store collaborator.
//
// This package serves as the foundational logic for the `cta` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth: the ledger.
package carteira
