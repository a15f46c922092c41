package dto

type JobRequest struct {
	ID            string `json:"id"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Neighborhood  string `json:"neighborhood"`
	Status        string `json:"status"`
	TechnicianID  string `json:"technician_id"`
	SequenceOrder int    `json:"sequence_order"`
}

type TechnicianRequest struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	StartPoint *Point  `json:"start_point"`
	EndPoint   *Point  `json:"end_point"`
	Zone       string  `json:"zone"`
}

type TerritoryAssignmentRequest struct {
	TechnicianID string `json:"technician_id"`
	City         string `json:"city"`
}

type DistributeRequest struct {
	Jobs        []JobRequest                 `json:"jobs"`
	Technicians []TechnicianRequest          `json:"technicians"`
	Assignments []TerritoryAssignmentRequest `json:"assignments"`
}

type AssignmentResponse struct {
	JobID        string `json:"job_id"`
	TechnicianID string `json:"technician_id"`
}

type DistributeResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}
