package stats

// TukeyFences returns Q1 - k*IQR and Q3 + k*IQR. k = 1.5 gives the usual
// box-plot whiskers.
func TukeyFences(x []float64, k float64) (lo, hi float64) {
	q1, q3 := Percentile(x, 25), Percentile(x, 75)
	iqr := q3 - q1
	return q1 - k*iqr, q3 + k*iqr
}

// CountOutliers counts the values of x outside its Tukey fences.
func CountOutliers(x []float64, k float64) int {
	if len(x) == 0 {
		return 0
	}
	lo, hi := TukeyFences(x, k)
	n := 0
	for _, v := range x {
		if v < lo || v > hi {
			n++
		}
	}
	return n
}
