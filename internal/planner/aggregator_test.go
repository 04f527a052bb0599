package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

func f64(v float64) *float64 { return &v }

func stopAt(c Coordinate) models.DestinationStop {
	return models.DestinationStop{DestinationID: uuid.New(), Latitude: c.Lat, Longitude: c.Lon}
}

func TestAggregateSingleStop(t *testing.T) {
	s := stopAt(paris)
	s.TravelCostFromPrevious = f64(12)
	s.TravelTimeFromPrevious = f64(3)
	it := &models.Itinerary{Destinations: []models.DestinationStop{s}, TotalCost: 99}

	sum, err := NewAggregator(DefaultCostParams).Aggregate(it)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if it.TotalCost != 0 || sum.TotalCost != 0 || sum.Legs != 0 {
		t.Errorf("single stop: total = %v, summary = %+v, want zero", it.TotalCost, sum)
	}
	if it.Destinations[0].TravelCostFromPrevious != nil || it.Destinations[0].TravelTimeFromPrevious != nil {
		t.Error("single stop: from-previous fields should be unset")
	}
}

func TestAggregateParisRome(t *testing.T) {
	p, r := stopAt(paris), stopAt(rome)
	p.BaseCost, p.CostPerKm = f64(50), f64(0.1)
	r.BaseCost, r.CostPerKm = f64(50), f64(0.1)
	it := &models.Itinerary{Destinations: []models.DestinationStop{p, r}}

	sum, err := NewAggregator(CostParams{}).Aggregate(it)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	romeStop := it.Destinations[1]
	if romeStop.TravelCostFromPrevious == nil || romeStop.TravelTimeFromPrevious == nil {
		t.Fatal("second stop is missing travel fields")
	}
	if got := *romeStop.TravelCostFromPrevious; math.Abs(got-160.528) > 0.05 {
		t.Errorf("travel_cost_from_previous = %v, want ~160.5", got)
	}
	if got := *romeStop.TravelTimeFromPrevious; math.Abs(got-11.0528) > 0.005 {
		t.Errorf("travel_time_from_previous = %v, want ~11.05", got)
	}
	if math.Abs(it.TotalCost-*romeStop.TravelCostFromPrevious) > 1e-9 {
		t.Errorf("total_cost = %v, want %v", it.TotalCost, *romeStop.TravelCostFromPrevious)
	}
	if math.Abs(sum.TotalDistanceKm-1105.28) > 0.5 || it.TotalDistanceKm != sum.TotalDistanceKm {
		t.Errorf("distance = %v / %v, want ~1105", sum.TotalDistanceKm, it.TotalDistanceKm)
	}
	if it.Destinations[0].TravelCostFromPrevious != nil {
		t.Error("first stop should have no travel cost")
	}
}

func TestAggregateTotalEqualsSumOfLegs(t *testing.T) {
	route := []Coordinate{
		paris,
		rome,
		{Lat: 52.52, Lon: 13.405},
		{Lat: 52.52, Lon: 13.405},
		{Lat: 40.4168, Lon: -3.7038},
	}
	it := &models.Itinerary{}
	for i, c := range route {
		s := stopAt(c)
		if i%2 == 0 {
			s.BaseCost = f64(float64(10 * i))
		}
		it.Destinations = append(it.Destinations, s)
	}

	if _, err := NewAggregator(DefaultCostParams).Aggregate(it); err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	var sum float64
	for _, s := range it.Destinations[1:] {
		sum += *s.TravelCostFromPrevious
	}
	if math.Abs(sum-it.TotalCost) > 1e-9 {
		t.Errorf("sum of legs = %v, total_cost = %v", sum, it.TotalCost)
	}

	// zero-length leg still pays the destination's base cost
	if got := *it.Destinations[3].TravelCostFromPrevious; got != DefaultCostParams.BaseCost {
		t.Errorf("zero-distance leg cost = %v, want %v", got, DefaultCostParams.BaseCost)
	}
}

func TestAggregateErrorsLeaveItineraryUntouched(t *testing.T) {
	tests := []struct {
		name    string
		stops   []models.DestinationStop
		wantErr func(error) bool
	}{
		{
			name:  "bad coordinate",
			stops: []models.DestinationStop{stopAt(paris), stopAt(Coordinate{Lat: 120, Lon: 0})},
			wantErr: func(err error) bool {
				return errors.Is(err, apperrors.ErrInvalidCoordinate)
			},
		},
		{
			name: "negative base cost",
			stops: func() []models.DestinationStop {
				r := stopAt(rome)
				r.BaseCost = f64(-1)
				return []models.DestinationStop{stopAt(paris), r}
			}(),
			wantErr: func(err error) bool {
				var ve *apperrors.ValidationError
				return errors.As(err, &ve) && ve.Field == "destinations[1].base_cost"
			},
		},
		{
			name:  "empty",
			stops: nil,
			wantErr: func(err error) bool {
				return apperrors.KindOf(err) == apperrors.KindValidation
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := &models.Itinerary{Destinations: tt.stops, TotalCost: 7}
			_, err := NewAggregator(DefaultCostParams).Aggregate(it)
			if err == nil || !tt.wantErr(err) {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if it.TotalCost != 7 {
				t.Errorf("total_cost changed to %v on failure", it.TotalCost)
			}
			for i, s := range it.Destinations {
				if s.TravelCostFromPrevious != nil {
					t.Errorf("stop %d was priced despite failure", i)
				}
			}
		})
	}
}

func TestAggregateAntipodalLegValidates(t *testing.T) {
	it := validItinerary()
	it.Destinations = []models.DestinationStop{
		stopAt(Coordinate{Lat: -88.5, Lon: -179.5}),
		stopAt(Coordinate{Lat: 88.5, Lon: 0.5}),
	}

	sum, err := NewAggregator(DefaultCostParams).Aggregate(it)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if math.IsNaN(sum.TotalDistanceKm) || math.IsNaN(it.TotalCost) {
		t.Fatalf("summary = %+v, total_cost = %v", sum, it.TotalCost)
	}
	want := EstimateTravelCost(sum.TotalDistanceKm, DefaultCostParams)
	if math.Abs(it.TotalCost-want) > 1e-9 {
		t.Errorf("total_cost = %v, want %v", it.TotalCost, want)
	}
	if err := Validate(it); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
