package domain

// Business a provider offering bookable services, as described by the catalog
type Business struct {
	ID              int64
	Name            string
	Category        string
	Address         string
	City            string
	Rating          float64
	TotalReviews    int
	Services        []Service
	ProfessionalIDs []int64 // informational only
}

// Service a bookable offering of a business
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int // does not affect slot width
	Price           float64
	Description     string
}

// FindService looks up a service of this business by id
func (b *Business) FindService(serviceID int64) (*Service, bool) {
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			return &b.Services[i], true
		}
	}
	return nil, false
}
