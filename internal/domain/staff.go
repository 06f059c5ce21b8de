package domain

import "time"

// Staff is an employee of a wash center.
// TotalJobs counts assignments, CompletedJobs counts bookings the employee
// worked on that reached completion.
type Staff struct {
	ID       int64
	CenterID int64
	FullName string
	Position string
	IsActive bool

	TotalJobs     int
	CompletedJobs int

	CreatedAt time.Time
	UpdatedAt time.Time
}
