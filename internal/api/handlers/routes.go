package handlers

import (
	"log"
	"net/http"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/services"
)

// RouteHandler exposes route sequencing and fixed-order estimation.
type RouteHandler struct {
	Sequencer *services.Sequencer
	Estimator *services.Estimator
}

// Optimize re-orders a technician's stops into a visitation sequence.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, stops, end := routeInput(req)

	result, err := h.Sequencer.Optimize(r.Context(), start, stops, end)
	if err != nil {
		log.Printf("route optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(result))
}

// Estimate computes distance/duration for a fixed stop order.
func (h *RouteHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, stops, end := routeInput(req)

	result, err := h.Estimator.EstimateFixedOrder(r.Context(), start, stops, end)
	if err != nil {
		log.Printf("route estimate failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(result))
}

func routeInput(req dto.RouteRequest) (domain.GeoPoint, []domain.GeoPoint, *domain.GeoPoint) {
	start := domain.GeoPoint{Lat: req.Start.Lat, Lng: req.Start.Lng}

	stops := make([]domain.GeoPoint, 0, len(req.Stops))
	for _, p := range req.Stops {
		stops = append(stops, domain.GeoPoint{Lat: p.Lat, Lng: p.Lng})
	}

	return start, stops, toPoint(req.End)
}

func routeResponse(result domain.RouteResult) dto.RouteResponse {
	return dto.RouteResponse{
		TotalDistanceKm:      result.TotalDistanceKm,
		TotalDurationSeconds: result.TotalDurationSeconds,
		Geometry:             result.Geometry,
		OptimizedOrder:       result.OptimizedOrder,
	}
}
