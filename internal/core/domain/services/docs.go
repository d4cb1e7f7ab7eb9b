// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - OrderDispatcher: ranks candidate couriers and claims one for a new order
//   - StatisticsAggregator: recomputes courier performance aggregates from order history
package services
