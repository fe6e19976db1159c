// Package models defines the core domain models for the expense ledger.
//
// # Models
//
//   - User: Registered account that can pay for and participate in expenses
//   - Group: Set of users who share expenses
//   - Expense: Immutable ledger entry with an amount and a split policy
//
// # Design Principles
//
//  1. **Integer money**: All amounts are minor currency units (cents) stored
//     as int64. Floating point never touches a monetary amount, so sums are
//     exact and the zero-sum balance invariant can hold exactly.
//  2. **Immutable ledger**: Expenses are written once and never updated.
//     Balances and settlement plans are always derived from the expense set
//     at read time; there is no stored balance state to invalidate.
//  3. **Avoid circular references**: Use ID strings instead of pointers for
//     relationships.
//  4. **Closed split variants**: SplitType is a closed set handled
//     exhaustively at resolution time, so adding a new split kind (e.g.
//     exact amounts) is a compile-visible extension, not a stringly-typed
//     special case.
package models
