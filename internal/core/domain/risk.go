package domain

// FeatureVector is the fixed 3-feature input of the risk classifier,
// derived per customer and discarded once the request is served.
type FeatureVector struct {
	TotalInvoiced float64 `json:"totalInvoiced"`
	TotalPaid     float64 `json:"totalPaid"`
	DaysToDue     int     `json:"daysToDue"`
}

// Values returns the vector in classifier input order.
func (v FeatureVector) Values() [3]float64 {
	return [3]float64{v.TotalInvoiced, v.TotalPaid, float64(v.DaysToDue)}
}

// RiskScore is a scored customer: the classifier's probability that the
// customer will become overdue, already rounded for presentation.
type RiskScore struct {
	CustomerID  string  `json:"id"`
	Name        string  `json:"name"`
	Probability float64 `json:"riesgo"`
}
