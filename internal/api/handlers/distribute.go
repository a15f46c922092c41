package handlers

import (
	"net/http"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/services"
)

// DistributeHandler runs one territory distribution over a caller-supplied
// snapshot of jobs and technicians. Nothing is persisted here; the caller
// applies the returned assignment pairs.
type DistributeHandler struct{}

func (h *DistributeHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.DistributeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	jobs := make([]*domain.Job, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		jobs = append(jobs, &domain.Job{
			ID:            j.ID,
			Address:       j.Address,
			City:          j.City,
			State:         j.State,
			Neighborhood:  j.Neighborhood,
			Status:        domain.JobStatus(j.Status),
			TechnicianID:  j.TechnicianID,
			SequenceOrder: j.SequenceOrder,
		})
	}

	technicians := make([]*domain.Technician, 0, len(req.Technicians))
	for _, t := range req.Technicians {
		technicians = append(technicians, &domain.Technician{
			ID:         t.ID,
			Status:     domain.TechnicianStatus(t.Status),
			Position:   domain.GeoPoint{Lat: t.Lat, Lng: t.Lng},
			StartPoint: toPoint(t.StartPoint),
			EndPoint:   toPoint(t.EndPoint),
			Zone:       t.Zone,
		})
	}

	assignments := make([]domain.TerritoryAssignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, domain.TerritoryAssignment{
			TechnicianID: a.TechnicianID,
			City:         a.City,
		})
	}

	result := services.Distribute(jobs, technicians, assignments)

	res := dto.DistributeResponse{Assignments: make([]dto.AssignmentResponse, 0, len(result))}
	for _, a := range result {
		res.Assignments = append(res.Assignments, dto.AssignmentResponse{
			JobID:        a.JobID,
			TechnicianID: a.TechnicianID,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toPoint(p *dto.Point) *domain.GeoPoint {
	if p == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}
