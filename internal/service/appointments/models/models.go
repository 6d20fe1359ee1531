package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListAppointmentsRequest фильтры списка записей
// StartDate/EndDate принимают YYYY-MM-DD (весь день включительно) или ISO 8601
type ListAppointmentsRequest struct {
	StartDate  *string
	EndDate    *string
	Status     *string
	EmployeeID *int64
	ClientID   *int64
	ServiceID  *int64
}

// ToDomainFilter конвертирует request в domain фильтр
// Даты без времени интерпретируются в location
func (r *ListAppointmentsRequest) ToDomainFilter(location *time.Location) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		EmployeeID: r.EmployeeID,
		ClientID:   r.ClientID,
		ServiceID:  r.ServiceID,
	}

	if r.StartDate != nil {
		from, err := parseBound(*r.StartDate, location, false)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}

	if r.EndDate != nil {
		to, err := parseBound(*r.EndDate, location, true)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.AppointmentStatus{status}
	}

	return filter, nil
}

// parseBound разбирает границу периода; для даты без времени end=true дает конец дня
func parseBound(value string, location *time.Location, end bool) (time.Time, error) {
	if domain.IsDateOnly(value) {
		day, err := domain.ParseDate(value, location)
		if err != nil {
			return time.Time{}, err
		}
		if end {
			return domain.EndOfDay(day), nil
		}
		return day, nil
	}
	return domain.ParseDateTime(value, location)
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                       int64           `json:"id"`
	ClientID                 int64           `json:"clientId"`
	PetID                    int64           `json:"petId"`
	ServiceID                int64           `json:"serviceId"`
	EmployeeID               *int64          `json:"employeeId"`
	ScheduledAt              time.Time       `json:"scheduledAt"`
	Status                   string          `json:"status"`
	Notes                    *string         `json:"notes"`
	EstimatedValue           decimal.Decimal `json:"estimatedValue"`
	EstimatedDurationMinutes *int            `json:"estimatedDurationMinutes"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatisticsResponse сводка по записям
type StatisticsResponse struct {
	Total    int            `json:"total"`
	Today    int            `json:"today"`
	ThisWeek int            `json:"thisWeek"`
	ByStatus map[string]int `json:"byStatus"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                       a.ID,
		ClientID:                 a.ClientID,
		PetID:                    a.PetID,
		ServiceID:                a.ServiceID,
		EmployeeID:               a.EmployeeID,
		ScheduledAt:              a.ScheduledAt,
		Status:                   string(a.Status),
		Notes:                    a.Notes,
		EstimatedValue:           a.EstimatedValue,
		EstimatedDurationMinutes: a.EstimatedDurationMinutes,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}

// FromDomainStatistics конвертирует статистику в DTO; все статусы присутствуют в byStatus
func FromDomainStatistics(st *domain.AppointmentStatistics) *StatisticsResponse {
	resp := &StatisticsResponse{
		Total:    st.Total,
		Today:    st.Today,
		ThisWeek: st.ThisWeek,
		ByStatus: make(map[string]int, len(domain.AllStatuses)),
	}

	for _, status := range domain.AllStatuses {
		resp.ByStatus[string(status)] = st.ByStatus[status]
	}

	return resp
}
