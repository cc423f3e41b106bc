package serve

import (
	"net/http"
)

// Fixed demo payloads behind the dashboard panels. These mirror what the
// exhibition build showed; a production rover would compute them from the
// detection pipeline.

// PestEntry is one row of the infestation breakdown panel.
type PestEntry struct {
	Icon       string `json:"icon"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

type PestsServer struct{}

func (s *PestsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []PestEntry{
		{Icon: "🐛", Name: "aphid", Percentage: 23},
		{Icon: "🦗", Name: "locust", Percentage: 15},
		{Icon: "🍄", Name: "fungus", Percentage: 12},
	})
}

// CoreStats is the analytics card.
type CoreStats struct {
	Statistics        int     `json:"statistics"`
	Effect            float64 `json:"effect"`
	Efficiency        float64 `json:"efficiency"`
	EnergyConsumption float64 `json:"energy_consumption"`
	Speed             float64 `json:"speed"`
	RecognitionRate   float64 `json:"recognition_rate"`
	ComputingPower    float64 `json:"computing_power"`
}

type CoreStatsServer struct{}

func (s *CoreStatsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &CoreStats{
		Statistics:        15,
		Effect:            2.7,
		Efficiency:        3.15,
		EnergyConsumption: 2.3,
		Speed:             2.0,
		RecognitionRate:   5.13,
		ComputingPower:    3.2,
	})
}

// Solution is the recommended treatment panel.
type Solution struct {
	LeafPosition     string `json:"leaf_position"`
	PestType         string `json:"pest_type"`
	HarmLevel        string `json:"harm_level"`
	RecommendedAgent string `json:"recommended_agent"`
	PesticideResidue string `json:"pesticide_residue"`
	ControlCycle     string `json:"control_cycle"`
}

type SolutionServer struct{}

func (s *SolutionServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &Solution{
		LeafPosition:     "Zone A-3",
		PestType:         "aphid",
		HarmLevel:        "moderate",
		RecommendedAgent: "imidacloprid",
		PesticideResidue: "≤0.5mg/kg",
		ControlCycle:     "7-10 days",
	})
}

// ResourceEntry is one tile of the consumption strip along the bottom of
// the dashboard.
type ResourceEntry struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Value string `json:"value"`
}

type ResourcesServer struct{}

func (s *ResourcesServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []ResourceEntry{
		{Icon: "💧", Title: "Water Consumption", Value: "56L"},
		{Icon: "⚡", Title: "Power Consumption", Value: "200kWh"},
		{Icon: "🌱", Title: "Crop Health", Value: "92%"},
		{Icon: "🎯", Title: "Inspection Progress", Value: "68%"},
	})
}
