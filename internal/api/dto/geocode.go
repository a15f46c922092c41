package dto

type GeocodeRequest struct {
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Neighborhood string `json:"neighborhood"`
}

type GeocodeResponse struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Importance float64 `json:"importance"`
	Fuzzy      bool    `json:"fuzzy"`
}
