package service

import "time"

// Quote computes the total price for a reservation interval at the given
// hourly rate. Partial hours round up and every booking is billed for at
// least one hour, so a 90 minute slot costs two hours and a 5 minute slot
// costs one.
func Quote(hourlyRate float64, start, end time.Time) (total float64, billableHours int64) {
	minutes := int64(end.Sub(start).Minutes())

	billableHours = (minutes + 59) / 60
	if billableHours < 1 {
		billableHours = 1
	}

	return hourlyRate * float64(billableHours), billableHours
}
