// Package courier provides the Courier aggregate of the dispatch domain.
//
// The package includes:
//   - Courier: the aggregate root holding identity, served districts, the claim slot
//     and the performance statistics
//   - Claim: the single-slot holder that marks a courier as busy, first with a
//     placeholder token during dispatch and then with the id of the active order
//   - Statistics: the two rolling aggregates recomputed on every completion
//
// Key business rules:
//   - A courier serves zero or more districts; duplicate district names collapse.
//     A courier without districts is never a dispatch candidate
//   - A courier holds at most one order at a time
//   - Only the held order can be released
package courier
