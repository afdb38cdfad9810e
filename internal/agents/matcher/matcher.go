// Package matcher implements the Matcher Agent: it reports whether the
// employee pool's station skills can cover a station's requirement, and
// recommends cross-training when they can't (spec.md §4.2).
package matcher

import (
	"sort"

	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// StationCoverage is the per-station qualified-headcount summary (spec.md §4.2).
type StationCoverage struct {
	Station             string   `json:"station"`
	Required            int      `json:"required"`
	Available            int      `json:"available"`
	CoverageRatio        float64  `json:"coverage_ratio"`
	IsSufficient         bool     `json:"is_sufficient"`
	QualifiedEmployeeIDs []string `json:"qualified_employee_ids"`
}

// Shortage names a station whose qualified headcount falls short of the
// requirement supplied by the caller.
type Shortage struct {
	Station  string `json:"station"`
	Shortage int    `json:"shortage"`
}

// CrossTrainRecommendation suggests employees to cross-train into a
// short-staffed station (spec.md §9.3 supplemented feature).
type CrossTrainRecommendation struct {
	Station        string   `json:"station"`
	CandidateIDs   []string `json:"candidate_ids"`
	TrainingNeeded bool     `json:"training_needed"`
}

// Agent groups employees into station pools and checks requirement
// coverage (spec.md §4.2 "Matcher Agent").
type Agent struct {
	state *models.AgentState
	log   *logging.Logger
}

func New(log *logging.Logger) *Agent {
	return &Agent{state: models.NewAgentState("MatcherAgent"), log: log}
}

func (a *Agent) State() *models.AgentState { return a.state }

// stationPool is every employee qualified to work a station, via primary
// assignment or cross-training (spec.md §4.2 eligibility rules).
func stationPool(employees []models.Employee, station string) []models.Employee {
	var pool []models.Employee
	for _, e := range employees {
		if e.CanWorkStation(station) {
			pool = append(pool, e)
		}
	}
	return pool
}

// MatchStations computes coverage for every required station (spec.md §4.2
// "match_employees_to_stations", generalized beyond a fixed station
// enum: any station name present in requirements is evaluated against
// the full cross-training graph instead of a hardcoded pool list).
func (a *Agent) MatchStations(employees []models.Employee, requirements map[string]int) ([]StationCoverage, []Shortage) {
	a.state.SetStatus(models.Running)
	a.state.SetAction("match_skills")

	stations := make([]string, 0, len(requirements))
	for s := range requirements {
		stations = append(stations, s)
	}
	sort.Strings(stations)

	var coverage []StationCoverage
	var shortages []Shortage
	for _, station := range stations {
		required := requirements[station]
		qualified := stationPool(employees, station)

		ratio := 1.0
		if required > 0 {
			ratio = float64(len(qualified)) / float64(required)
		}

		ids := make([]string, len(qualified))
		for i, e := range qualified {
			ids[i] = e.ID
		}

		coverage = append(coverage, StationCoverage{
			Station:              station,
			Required:             required,
			Available:            len(qualified),
			CoverageRatio:        ratio,
			IsSufficient:         len(qualified) >= required,
			QualifiedEmployeeIDs: ids,
		})

		if len(qualified) < required {
			shortages = append(shortages, Shortage{Station: station, Shortage: required - len(qualified)})
		}
	}

	a.log.WithField("shortages", len(shortages)).Info("station matching complete")
	a.state.SetStatus(models.Succeeded)
	return coverage, shortages
}

// RecommendCrossTraining proposes employees whose primary station is
// adjacent to a shortage to cross-train into it, skipping employees
// already flexible across multiple stations (spec.md §9.3, grounded on
// the original's "related station" heuristic, generalized from a fixed
// Kitchen/Counter/McCafe map to an adjacency table the caller supplies).
func (a *Agent) RecommendCrossTraining(employees []models.Employee, shortages []Shortage, adjacency map[string][]string) []CrossTrainRecommendation {
	var recs []CrossTrainRecommendation
	for _, shortage := range shortages {
		var candidateIDs []string
		for _, emp := range employees {
			if len(emp.CrossTrainedStations) > 0 {
				continue // already flexible, not a training target
			}
			for _, related := range adjacency[shortage.Station] {
				if emp.PrimaryStation == related {
					candidateIDs = append(candidateIDs, emp.ID)
					break
				}
			}
			if len(candidateIDs) >= shortage.Shortage {
				break
			}
		}
		recs = append(recs, CrossTrainRecommendation{
			Station:        shortage.Station,
			CandidateIDs:   candidateIDs,
			TrainingNeeded: true,
		})
	}
	return recs
}
