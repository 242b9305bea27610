package ui

// activityGain maps per-step change to mask intensity. A change of 0.25 or
// more saturates.
const activityGain = 4

// activity writes |cur-prev| scaled by gain into dst, capped at 1, and
// then copies cur into prev.
func activity(dst, cur, prev []float32, gain float32) {
	for i, v := range cur {
		d := v - prev[i]
		if d < 0 {
			d = -d
		}
		d *= gain
		if d > 1 {
			d = 1
		}
		dst[i] = d
		prev[i] = v
	}
}
