package planner

// CostParams prices a transfer into a destination
type CostParams struct {
	BaseCost  float64 `json:"base_cost"`
	CostPerKm float64 `json:"cost_per_km"`
}

// DefaultCostParams apply when neither the stop nor its destination carries
// its own parameters.
var DefaultCostParams = CostParams{BaseCost: 50, CostPerKm: 0.1}

// EstimateTravelCost returns base + distance*perKm. A zero distance still
// costs the base fee.
func EstimateTravelCost(distanceKm float64, p CostParams) float64 {
	return p.BaseCost + distanceKm*p.CostPerKm
}
