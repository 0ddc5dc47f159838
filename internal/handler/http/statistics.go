package http

import (
	"net/http"

	"github.com/kerjalog/attendance-backend-go/internal/domain/statistics"
	"github.com/kerjalog/attendance-backend-go/internal/handler/http/response"
)

type StatisticsHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type statisticsHandlerImpl struct {
	statisticsService statistics.Service
}

func NewStatisticsHandler(statisticsService statistics.Service) StatisticsHandler {
	return &statisticsHandlerImpl{
		statisticsService: statisticsService,
	}
}

// GetStats implements StatisticsHandler.
func (h *statisticsHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	req := statistics.StatsRequest{}
	query := r.URL.Query()

	if startDate := query.Get("start_date"); startDate != "" {
		req.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		req.EndDate = &endDate
	}
	if departmentID := query.Get("department_id"); departmentID != "" {
		req.DepartmentID = &departmentID
	}

	result, err := h.statisticsService.GetStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
