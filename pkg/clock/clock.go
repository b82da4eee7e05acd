package clock

import "time"

type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed всегда возвращает одно и то же время.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
