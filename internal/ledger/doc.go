// Package ledger implements the period accounting and allocation engine.
//
// Balances are always derived from stored transactions. Every operation
// takes the store handle and the account id explicitly and runs multi-row
// mutations inside one database transaction.
package ledger
