package services

import (
	"slices"

	"fleet-routing-service/internal/domain"
)

// Distribute partitions pending jobs across active technicians by territory.
//
// Jobs already carrying an active technician pass through unchanged; the
// distributor never silently reassigns in-progress work. Unassigned jobs are
// grouped by normalized city, clustered at city+neighborhood granularity and
// dealt to that city's technicians as contiguous chunks of the sorted
// location list. Leftover cities go to floating technicians in a second
// pass; anything still unresolved is omitted so a later run (or a human) can
// pick it up.
//
// The split is deterministic: location keys sort lexicographically and a
// single neighborhood's jobs never scatter across technicians.
func Distribute(
	jobs []*domain.Job,
	technicians []*domain.Technician,
	assignments []domain.TerritoryAssignment,
) []domain.Assignment {
	active := make(map[string]*domain.Technician, len(technicians))
	for _, t := range technicians {
		if t.Active() {
			active[t.ID] = t
		}
	}

	var out []domain.Assignment
	preAssigned := make(map[string][]*domain.Job) // technician -> their jobs
	var unassigned []*domain.Job

	for _, j := range jobs {
		if j.Status != domain.JobStatusPending {
			continue
		}
		if j.Assigned() {
			if _, ok := active[j.TechnicianID]; ok {
				// Idempotent re-affirmation of the existing assignment.
				out = append(out, domain.Assignment{JobID: j.ID, TechnicianID: j.TechnicianID})
				preAssigned[j.TechnicianID] = append(preAssigned[j.TechnicianID], j)
				continue
			}
		}
		unassigned = append(unassigned, j)
	}

	territory := territoryMap(active, preAssigned, assignments)

	// Group the backlog by normalized city. Jobs whose city cannot be
	// determined go straight to the floater pool.
	byCity := make(map[string][]*domain.Job)
	var unresolved []*domain.Job
	for _, j := range unassigned {
		city := jobCity(j.City, j.Address)
		if city == "" {
			unresolved = append(unresolved, j)
			continue
		}
		byCity[city] = append(byCity[city], j)
	}

	cities := make([]string, 0, len(byCity))
	for c := range byCity {
		cities = append(cities, c)
	}
	slices.Sort(cities)

	for _, city := range cities {
		techs := techniciansForCity(active, territory, city)
		if len(techs) == 0 {
			unresolved = append(unresolved, byCity[city]...)
			continue
		}
		out = append(out, clusterAndDeal(byCity[city], techs)...)
	}

	// Second pass: remaining jobs form one city-agnostic pool for the
	// floaters (technicians with no explicit, inferred or static territory).
	if len(unresolved) > 0 {
		floaters := make([]string, 0, len(active))
		for id, t := range active {
			if _, mapped := territory[id]; !mapped && NormalizeCity(t.Zone) == "" {
				floaters = append(floaters, id)
			}
		}
		slices.Sort(floaters)

		if len(floaters) > 0 {
			out = append(out, clusterAndDeal(unresolved, floaters)...)
		}
	}

	return out
}

// territoryMap merges the two territory sources, explicit assignment winning
// over inference. Technicians absent from the caller-supplied list inherit
// the dominant city of their own pre-assigned jobs, so a technician with
// in-progress work in one city is not treated as free capacity elsewhere.
func territoryMap(
	active map[string]*domain.Technician,
	preAssigned map[string][]*domain.Job,
	assignments []domain.TerritoryAssignment,
) map[string]string {
	territory := make(map[string]string)

	for _, a := range assignments {
		if _, ok := active[a.TechnicianID]; !ok {
			continue
		}
		if city := NormalizeCity(a.City); city != "" {
			territory[a.TechnicianID] = city
		}
	}

	for techID, jobs := range preAssigned {
		if _, ok := territory[techID]; ok {
			continue
		}
		if city := dominantCity(jobs); city != "" {
			territory[techID] = city
		}
	}

	return territory
}

// dominantCity is a majority vote over the normalized cities of a
// technician's pre-assigned jobs, lexicographically smallest on ties.
func dominantCity(jobs []*domain.Job) string {
	votes := make(map[string]int)
	for _, j := range jobs {
		if city := jobCity(j.City, j.Address); city != "" {
			votes[city]++
		}
	}

	best := ""
	bestCount := 0
	for city, n := range votes {
		if n > bestCount || (n == bestCount && (best == "" || city < best)) {
			best = city
			bestCount = n
		}
	}
	return best
}

// techniciansForCity collects the technicians mapped to a city, falling back
// to the static zone field, sorted for deterministic chunk order.
func techniciansForCity(
	active map[string]*domain.Technician,
	territory map[string]string,
	city string,
) []string {
	var techs []string
	for id, t := range active {
		if territory[id] == city {
			techs = append(techs, id)
			continue
		}
		if _, mapped := territory[id]; !mapped && NormalizeCity(t.Zone) == city {
			techs = append(techs, id)
		}
	}
	slices.Sort(techs)
	return techs
}

// clusterAndDeal sub-groups jobs by city+neighborhood, sorts the location
// keys and deals contiguous ceil-division chunks of locations, one chunk per
// technician. Every job at a location goes entirely to one technician; when
// locations are fewer than technicians the tail technicians receive nothing.
func clusterAndDeal(jobs []*domain.Job, techs []string) []domain.Assignment {
	byLocation := make(map[string][]*domain.Job)
	for _, j := range jobs {
		key := locationKey(jobCity(j.City, j.Address), j.Neighborhood)
		byLocation[key] = append(byLocation[key], j)
	}

	locations := make([]string, 0, len(byLocation))
	for k := range byLocation {
		locations = append(locations, k)
	}
	slices.Sort(locations)

	nLocations := len(locations)
	chunkSize := (nLocations + len(techs) - 1) / len(techs)

	var out []domain.Assignment
	for ti := range techs {
		start := ti * chunkSize
		if start >= nLocations {
			break
		}
		end := min(start+chunkSize, nLocations)

		for _, loc := range locations[start:end] {
			for _, j := range byLocation[loc] {
				out = append(out, domain.Assignment{JobID: j.ID, TechnicianID: techs[ti]})
			}
		}
	}

	return out
}
