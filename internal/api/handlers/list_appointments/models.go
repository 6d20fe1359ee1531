package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// data_inicio, data_fim, status, funcionario_id, cliente_id, servico_id - все опциональны
func ToServiceRequest(query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}

	if v := query.Get("data_inicio"); v != "" {
		req.StartDate = &v
	}
	if v := query.Get("data_fim"); v != "" {
		req.EndDate = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	var err error
	if req.EmployeeID, err = parseID(query, "funcionario_id"); err != nil {
		return nil, err
	}
	if req.ClientID, err = parseID(query, "cliente_id"); err != nil {
		return nil, err
	}
	if req.ServiceID, err = parseID(query, "servico_id"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseID(query url.Values, name string) (*int64, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return &id, nil
}
