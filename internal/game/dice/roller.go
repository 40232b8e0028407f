package dice

import "go.uber.org/zap"

// Roller wraps a Source and logs every decision it makes at debug level, so a
// battle can be audited roll by roll.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewRoller called with nil source or logger")
	}
	return &Roller{src: src, logger: logger}
}

// Source exposes the underlying randomness provider.
func (r *Roller) Source() Source { return r.src }

// Intn draws a value in [0, n) and logs it under label.
//
// Precondition: n > 0.
func (r *Roller) Intn(label string, n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("roll", zap.String("label", label), zap.Int("n", n), zap.Int("value", v))
	return v
}

// Chance reports whether an event with probability num/den happens.
//
// Precondition: den > 0.
// Postcondition: num >= den always succeeds; num <= 0 always fails. The
// Source is consumed in both cases so roll sequences stay aligned.
func (r *Roller) Chance(label string, num, den int) bool {
	v := r.src.Intn(den)
	ok := v < num
	r.logger.Debug("chance",
		zap.String("label", label),
		zap.Int("num", num),
		zap.Int("den", den),
		zap.Int("value", v),
		zap.Bool("success", ok),
	)
	return ok
}

// Between draws a value in the inclusive range [lo, hi].
//
// Precondition: lo <= hi.
func (r *Roller) Between(label string, lo, hi int) int {
	if hi < lo {
		panic("dice: Between called with hi < lo")
	}
	return lo + r.Intn(label, hi-lo+1)
}

// Coin flips a fair coin.
func (r *Roller) Coin(label string) bool {
	return r.Intn(label, 2) == 0
}

// Roll evaluates expr, drawing one value per die.
//
// Postcondition: expr.Min() <= result.Total() <= expr.Max().
func (r *Roller) Roll(expr Expression) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = r.src.Intn(expr.Sides) + 1
	}
	result := RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}
