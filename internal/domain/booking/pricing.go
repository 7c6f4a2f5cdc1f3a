package booking

// PricingConfig is the per-apartment pricing snapshot the calculator works from.
type PricingConfig struct {
	PricePerNight Money
	ServiceFee    Money
	Deposit       Money
	MinStayNights int
	MaxStayNights int
}

// NightRate is one line of the per-night breakdown. The current model charges a
// flat nightly rate, but the breakdown keeps room for seasonal pricing.
type NightRate struct {
	Day  string
	Rate Money
}

type Quote struct {
	Nights        int
	PricePerNight Money
	Breakdown     []NightRate
	ServiceFee    Money
	Deposit       Money
	Total         Money
}

// CalculateQuote computes the nightly breakdown and total for a validated range.
// Pure and deterministic. Stay-length violations are domain errors, distinct
// from availability conflicts.
func CalculateQuote(cfg PricingConfig, rng DateRange) (Quote, error) {
	nights := rng.Nights()
	if cfg.MinStayNights > 0 && nights < cfg.MinStayNights {
		return Quote{}, ErrStayTooShort
	}
	if cfg.MaxStayNights > 0 && nights > cfg.MaxStayNights {
		return Quote{}, ErrStayTooLong
	}
	if cfg.PricePerNight.IsNegative() {
		return Quote{}, ErrNegativePrice
	}

	breakdown := make([]NightRate, 0, nights)
	subtotal := NewMoney(0)
	for _, day := range rng.Days() {
		breakdown = append(breakdown, NightRate{
			Day:  day.Format(dateLayout),
			Rate: cfg.PricePerNight,
		})
		subtotal = subtotal.Add(cfg.PricePerNight)
	}

	total := subtotal.Add(cfg.ServiceFee).Sub(cfg.Deposit)
	if total.IsNegative() {
		total = NewMoney(0)
	}

	return Quote{
		Nights:        nights,
		PricePerNight: cfg.PricePerNight,
		Breakdown:     breakdown,
		ServiceFee:    cfg.ServiceFee,
		Deposit:       cfg.Deposit,
		Total:         total,
	}, nil
}
