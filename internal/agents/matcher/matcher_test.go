package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func TestMatchStationsReportsShortage(t *testing.T) {
	a := New(logging.New())
	employees := []models.Employee{
		{ID: "e1", PrimaryStation: "Kitchen"},
		{ID: "e2", PrimaryStation: "Counter", CrossTrainedStations: map[string]bool{"Kitchen": true}},
	}
	requirements := map[string]int{"Kitchen": 3, "McCafe": 1}

	coverage, shortages := a.MatchStations(employees, requirements)

	assert.Len(t, coverage, 2)
	assert.NotEmpty(t, shortages)

	var kitchen StationCoverage
	for _, c := range coverage {
		if c.Station == "Kitchen" {
			kitchen = c
		}
	}
	assert.Equal(t, 2, kitchen.Available)
	assert.False(t, kitchen.IsSufficient)
}

func TestRecommendCrossTrainingSkipsAlreadyFlexible(t *testing.T) {
	a := New(logging.New())
	employees := []models.Employee{
		{ID: "e1", Name: "Alice", PrimaryStation: "Counter"},
		{ID: "e2", Name: "Bob", PrimaryStation: "Counter", CrossTrainedStations: map[string]bool{"Kitchen": true}},
	}
	shortages := []Shortage{{Station: "Kitchen", Shortage: 1}}
	adjacency := map[string][]string{"Kitchen": {"Counter"}}

	recs := a.RecommendCrossTraining(employees, shortages, adjacency)

	assert.Len(t, recs, 1)
	assert.Equal(t, []string{"e1"}, recs[0].CandidateIDs)
}
