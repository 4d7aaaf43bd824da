package domain

// SeatsFor returns the seats one passenger entry needs: the patient, plus one
// more when a companion travels along.
func SeatsFor(withCompanion bool) int {
	if withCompanion {
		return 2
	}
	return 1
}

// OccupiedSeats sums the seats taken by passengers. An empty list occupies 0.
func OccupiedSeats(passengers []Passenger) int {
	total := 0
	for _, p := range passengers {
		total += p.Seats()
	}
	return total
}

// RemainingSeats returns the free seats left in a vehicle of the given
// capacity. It never returns a negative number.
func RemainingSeats(capacity int, passengers []Passenger) int {
	free := capacity - OccupiedSeats(passengers)
	if free < 0 {
		return 0
	}
	return free
}

// CheckSeats returns a *CapacityError when required more seats do not fit.
func CheckSeats(capacity int, passengers []Passenger, required int) error {
	remaining := RemainingSeats(capacity, passengers)
	if required > remaining {
		return &CapacityError{Required: required, Remaining: remaining}
	}
	return nil
}

// SeatUsage summarizes seat usage on a trip's vehicle.
type SeatUsage struct {
	Capacity  int `json:"capacity"`
	Occupied  int `json:"occupied"`
	Remaining int `json:"remaining"`
}

// NewSeatUsage computes the usage of a vehicle with the given capacity.
func NewSeatUsage(capacity int, passengers []Passenger) SeatUsage {
	return SeatUsage{
		Capacity:  capacity,
		Occupied:  OccupiedSeats(passengers),
		Remaining: RemainingSeats(capacity, passengers),
	}
}
