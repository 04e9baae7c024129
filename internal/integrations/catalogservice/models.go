package catalogservice

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Business модель бизнеса из каталога
type Business struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        Category  `json:"category"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	Rating          float64   `json:"rating"`
	TotalReviews    int       `json:"totalReviews"`
	Services        []Service `json:"services"`
	ProfessionalIDs []int64   `json:"professionalIds"`
}

// Category категория бизнеса
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Service услуга бизнеса
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration"` // длительность в минутах
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (b *Business) ToDomain() *domain.Business {
	services := make([]domain.Service, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, domain.Service{
			ID:              s.ID,
			BusinessID:      b.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			Description:     s.Description,
		})
	}

	return &domain.Business{
		ID:              b.ID,
		Name:            b.Name,
		Category:        b.Category.Name,
		Address:         b.Address,
		City:            b.City,
		Rating:          b.Rating,
		TotalReviews:    b.TotalReviews,
		Services:        services,
		ProfessionalIDs: b.ProfessionalIDs,
	}
}
