package domain

import "time"

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  int64
	Type     string
	Detail   string
	Occurred time.Time
}
