package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/ports"
)

// GeocodeHandler exposes single-address resolution through the cascade.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.GeocodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Address) == "" && strings.TrimSpace(req.City) == "" && strings.TrimSpace(req.State) == "" {
		writeError(w, r, http.StatusBadRequest, "at least one of address, city or state is required")
		return
	}

	res, err := h.Geocoder.Resolve(r.Context(), req.Address, req.City, req.State, req.Neighborhood)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "address could not be resolved")
		return
	}
	if err != nil {
		log.Printf("geocode resolve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Lat:        res.Lat,
		Lng:        res.Lng,
		Importance: res.Importance,
		Fuzzy:      res.Fuzzy,
	})
}
