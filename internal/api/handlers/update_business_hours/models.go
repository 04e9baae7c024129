package update_business_hours

import "github.com/m04kA/SMC-ReservationService/internal/service/hours/models"

// UpdateBusinessHoursRequest HTTP request model
type UpdateBusinessHoursRequest struct {
	StartHour *int `json:"startHour,omitempty"`
	EndHour   *int `json:"endHour,omitempty"`
}

// ToServiceRequest формирует запрос к сервису
func (r *UpdateBusinessHoursRequest) ToServiceRequest(userID int64) *models.UpdateHoursRequest {
	return &models.UpdateHoursRequest{
		UserID:    userID,
		StartHour: r.StartHour,
		EndHour:   r.EndHour,
	}
}
