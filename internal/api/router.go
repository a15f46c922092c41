package api

import (
	"net/http"

	"fleet-routing-service/internal/api/handlers"
	"fleet-routing-service/internal/ports"
	"fleet-routing-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(geocoder ports.Geocoder, sequencer *services.Sequencer, estimator *services.Estimator) http.Handler {
	mux := http.NewServeMux()

	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}
	distributeHandler := &handlers.DistributeHandler{}
	routeHandler := &handlers.RouteHandler{
		Sequencer: sequencer,
		Estimator: estimator,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/geocode", geocodeHandler.Resolve)
	mux.HandleFunc("/distribute", distributeHandler.Distribute)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/routes/estimate", routeHandler.Estimate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
