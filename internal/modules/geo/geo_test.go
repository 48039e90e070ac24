package geo

import (
	"math"
	"testing"

	"github.com/PyDenTech/setrae-bot/internal/types"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: -6.0675, Lng: -49.9035},
			b:         types.Point{Lat: -6.0675, Lng: -49.9035},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Parauapebas to Maraba (~150km)",
			a:         types.Point{Lat: -6.0675, Lng: -49.9035},
			b:         types.Point{Lat: -5.3686, Lng: -49.1178},
			wantKm:    115,
			tolerance: 15,
		},
		{
			name:      "Belem to Brasilia (~1700km)",
			a:         types.Point{Lat: -1.4558, Lng: -48.5044},
			b:         types.Point{Lat: -15.7939, Lng: -47.8828},
			wantKm:    1600,
			tolerance: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: -6.0, Lng: -50.0}
	b := types.Point{Lat: -5.0, Lng: -49.0}
	d1 := DistanceKm(a, b)
	d2 := DistanceKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestNearestStop_Empty(t *testing.T) {
	_, _, ok := NearestStop(types.Point{Lat: -6.0, Lng: -50.0}, nil)
	if ok {
		t.Fatal("expected no result for empty candidate list")
	}
}

func TestNearestStop_AllUnparsable(t *testing.T) {
	candidates := []StopCandidate{
		{ID: "1", Name: "Ponto A", Latitude: "n/a", Longitude: "-50.0"},
		{ID: "2", Name: "Ponto B", Latitude: "-6.0", Longitude: ""},
	}
	_, _, ok := NearestStop(types.Point{Lat: -6.0, Lng: -50.0}, candidates)
	if ok {
		t.Fatal("expected no result when every candidate is unparsable")
	}
}

func TestNearestStop_SingleCandidate(t *testing.T) {
	candidates := []StopCandidate{
		{ID: "1", Name: "Ponto Único", Latitude: "10.0", Longitude: "10.0"},
	}
	got, _, ok := NearestStop(types.Point{Lat: -6.0, Lng: -50.0}, candidates)
	if !ok {
		t.Fatal("expected a result")
	}
	if got.ID != "1" {
		t.Errorf("unexpected candidate: %v", got)
	}
}

func TestNearestStop_PicksMinimumAndSkipsBad(t *testing.T) {
	origin := types.Point{Lat: -6.0, Lng: -50.0}
	candidates := []StopCandidate{
		{ID: "far", Name: "Ponto Distante", Latitude: "-6.5", Longitude: "-50.5"},
		{ID: "bad", Name: "Ponto Inválido", Latitude: "abc", Longitude: "-50.0"},
		{ID: "near", Name: "Ponto Próximo", Latitude: "-6.001", Longitude: "-50.001"},
	}
	got, dist, ok := NearestStop(origin, candidates)
	if !ok {
		t.Fatal("expected a result")
	}
	if got.ID != "near" {
		t.Errorf("expected nearest candidate, got %s", got.ID)
	}
	if dist > 1.0 {
		t.Errorf("unexpected distance %f", dist)
	}
}

func TestNearestStop_TieKeepsFirst(t *testing.T) {
	origin := types.Point{Lat: 0, Lng: 0}
	candidates := []StopCandidate{
		{ID: "first", Latitude: "1.0", Longitude: "0.0"},
		{ID: "second", Latitude: "1.0", Longitude: "0.0"},
	}
	got, _, ok := NearestStop(origin, candidates)
	if !ok || got.ID != "first" {
		t.Errorf("tie should keep first candidate, got %v", got.ID)
	}
}
