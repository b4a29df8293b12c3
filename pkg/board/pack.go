package board

import "math/rand"

// FillLine packs labels from pool into a line of the given target width.
//
// Labels are drawn uniformly at random. A drawn label is accepted if the
// accumulated width plus a gap (when the line already has content) plus the
// label's width still fits the target. On a failed placement the outcome
// depends on how full the line already is: at or above the fill threshold a
// single failure terminates the fill, below it the draw is discarded and
// packing continues. Total draws are bounded by AttemptFactor x pool size
// so the fill terminates even when the pool is small or mostly too wide.
//
// The result never exceeds target and never repeats a label. The routine
// is order-independent and best-effort; it does not try alternative labels
// after a terminating failure.
func FillLine(rng *rand.Rand, pool []Label, target int, cfg Config) []Label {
	cfg = cfg.withDefaults()
	if target <= 0 || len(pool) == 0 {
		return nil
	}

	attempts := cfg.AttemptFactor * len(pool)
	used := make([]bool, len(pool))
	var chosen []Label
	width := 0

	for a := 0; a < attempts && len(chosen) < len(pool); a++ {
		i := rng.Intn(len(pool))
		if used[i] {
			continue
		}

		need := pool[i].Width
		if len(chosen) > 0 {
			need += cfg.Gap
		}
		if width+need <= target {
			used[i] = true
			chosen = append(chosen, pool[i])
			width += need
			continue
		}

		// Failed placement. Once the line is at least FillThreshold full
		// the first failure ends it; otherwise keep drawing.
		if float64(width) >= cfg.FillThreshold*float64(target) {
			break
		}
	}

	return chosen
}

// FillLines partitions pool across cfg.Lines lines, each packed by
// [FillLine] against the same target width. Lines are filled in order; a
// label placed on an earlier line is excluded from later candidates, so no
// label appears twice in one pass. When the remaining pool is empty the
// pass stops early and the remaining lines stay empty.
func FillLines(rng *rand.Rand, pool []Label, target int, cfg Config) [][]Label {
	cfg = cfg.withDefaults()
	lines := make([][]Label, cfg.Lines)
	used := make(map[string]bool, len(pool))

	for i := range lines {
		avail := pool[:0:0]
		for _, l := range pool {
			if !used[l.Text] {
				avail = append(avail, l)
			}
		}
		if len(avail) == 0 {
			break
		}

		lines[i] = FillLine(rng, avail, target, cfg)
		for _, l := range lines[i] {
			used[l.Text] = true
		}
	}

	return lines
}
