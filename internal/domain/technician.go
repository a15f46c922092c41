package domain

// TechnicianStatus is the live availability state of a field technician.
type TechnicianStatus string

const (
	TechnicianStatusOnline   TechnicianStatus = "ONLINE"
	TechnicianStatusOffline  TechnicianStatus = "OFFLINE"
	TechnicianStatusEnRoute  TechnicianStatus = "EN_ROUTE"
	TechnicianStatusInactive TechnicianStatus = "INACTIVE"
)

// Field technician as reported by the dispatch store.
// StartPoint is the home base; EndPoint defaults to StartPoint when unset.
// Zone is an optional static territory (city name) pinned by an operator.
type Technician struct {
	ID         string
	Status     TechnicianStatus
	Position   GeoPoint
	StartPoint *GeoPoint
	EndPoint   *GeoPoint
	Zone       string
}

// Active technicians are eligible for distribution; Inactive ones are not.
func (t *Technician) Active() bool { return t.Status != TechnicianStatusInactive }

// Base returns the point a technician's route starts from: the fixed home
// base when one is configured, otherwise the live position.
func (t *Technician) Base() GeoPoint {
	if t.StartPoint != nil {
		return *t.StartPoint
	}
	return t.Position
}

// ReturnPoint returns the route end point, falling back to the start base.
func (t *Technician) ReturnPoint() *GeoPoint {
	if t.EndPoint != nil {
		return t.EndPoint
	}
	return t.StartPoint
}
