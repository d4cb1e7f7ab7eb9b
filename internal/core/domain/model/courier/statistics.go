package courier

import "time"

// Statistics are the two performance aggregates kept on a courier.
// AvgOrderCompleteTime is nil until the courier completes its first order.
type Statistics struct {
	AvgOrderCompleteTime *time.Duration
	AvgDayOrders         int
}

// IsEqual compares by value.
func (s Statistics) IsEqual(other Statistics) bool {
	if s.AvgDayOrders != other.AvgDayOrders {
		return false
	}
	if s.AvgOrderCompleteTime == nil || other.AvgOrderCompleteTime == nil {
		return s.AvgOrderCompleteTime == nil && other.AvgOrderCompleteTime == nil
	}
	return *s.AvgOrderCompleteTime == *other.AvgOrderCompleteTime
}
