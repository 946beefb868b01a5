package model

// ScreeningResult records a symbol that cleared the risk threshold,
// together with its decision statistic (the empirical return quantile).
type ScreeningResult struct {
	Symbol    string
	Statistic float64
}
