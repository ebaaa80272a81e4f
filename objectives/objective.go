package objectives

// Func is a real-valued objective over n-dimensional points. Engine
// components treat it as a black box: only point evaluations are assumed.
type Func func(x []float64) float64
