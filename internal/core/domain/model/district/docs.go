// Package district provides the District entity: a named service area and the set of
// couriers that serve it.
package district
