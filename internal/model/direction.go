package model

// Direction is a human-friendly label for the sign of a variance.
// Keep these values stable; they are intended for CSV output.
type Direction string

const (
	DirectionFavorable   Direction = "FAVORABLE"
	DirectionUnfavorable Direction = "UNFAVORABLE"
)

func DirectionFromVariance(total float64) Direction {
	if total >= 0 {
		return DirectionFavorable
	}
	return DirectionUnfavorable
}
