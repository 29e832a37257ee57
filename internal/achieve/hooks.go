package achieve

// The simulation driver calls these hooks as it mutates state. They keep
// the statistic table and goal progress in step without the tracker ever
// reading simulation state directly.

// OnGoldChanged records the running gold total after a tick.
func (t *Tracker) OnGoldChanged(totalGold float64) {
	if totalGold <= 0 {
		return
	}
	earned := uint64(totalGold)
	t.SetStatMax(StatTotalGoldEarned, earned)

	target := uint64(1_000_000)
	if earned < target {
		t.SetProgress(FirstMillion, earned)
	} else {
		t.SetProgress(FirstMillion, target)
	}
}

// OnSlumberComplete records a finished slumber of the given length.
func (t *Tracker) OnSlumberComplete(years uint) {
	t.IncrementStat(StatTotalYearsSlumbered, uint64(years))
	if years >= 100 {
		t.IncrementProgress(Centennial, uint64(years))
	}
}

// OnFamilySuccession records a family reaching a new generation.
func (t *Tracker) OnFamilySuccession(generation uint) {
	t.SetStatMax(StatMaxFamilyGeneration, uint64(generation))
	t.SetProgress(Dynasty, uint64(generation))
}

// OnInvestmentHeld records the longest-held investment.
func (t *Tracker) OnInvestmentHeld(years uint) {
	t.SetStatMax(StatMaxInvestmentYears, uint64(years))
	t.SetProgress(PatientInvestor, uint64(years))
}

// OnDarkUnlock fires when the first dark venture opens.
func (t *Tracker) OnDarkUnlock() {
	t.Unlock(DarkAwakening)
}

// OnSoulTrade fires on the first soul transaction.
func (t *Tracker) OnSoulTrade() {
	t.Unlock(SoulTrader)
}

// OnPrestige records a prestige reset.
func (t *Tracker) OnPrestige() {
	t.IncrementStat(StatPrestigeCount, 1)
	t.Unlock(Transcendence)
}

// OnKingdomDebtOwned records the player's largest debt share in any crown.
func (t *Tracker) OnKingdomDebtOwned(fraction float64) {
	if fraction >= 1.0 {
		t.Unlock(HostileTakeover)
	}
}
