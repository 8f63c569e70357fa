package components

// HeartComponent is the defended objective in the maze center
type HeartComponent struct {
	Vigor    int
	MaxVigor int
}

// Drained reports whether the heart has no vigor left
func (h *HeartComponent) Drained() bool {
	return h.Vigor <= 0
}
