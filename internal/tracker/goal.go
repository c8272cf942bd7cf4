package tracker

// GoalProgress returns current as a percentage of target, clamped to
// [0, 100]. A non-positive target yields 0.
func GoalProgress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := current / target * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Recompute refreshes the derived Progress and IsCompleted fields.
func (g *Goal) Recompute() {
	g.Progress = GoalProgress(g.Current, g.Target)
	g.IsCompleted = g.Target > 0 && g.Current >= g.Target
}
