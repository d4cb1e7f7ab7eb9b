// Package kernel provides the value objects shared by every aggregate of the dispatch domain.
//
// The package includes:
//   - ID: the positive integer identity of couriers and orders, allocated by repositories
//   - ClaimToken: the placeholder a matcher writes into a courier's claim slot before the
//     order that will occupy it has an id
//
// Both are immutable and safe for concurrent use.
package kernel
