package yaku

// BasePoints implements spec 4.7's base-point table: fixed bases from han
// 5 up (mangan 2000 through sanbaiman 6000), the round_up_mangan option promoting
// a pre-cap 1920 to the mangan 2000, and fu*2^(2+han) capped at 2000
// below that. Yakuman base points (8000 per multiplier) are computed
// directly in EvaluateAll, not here.
func BasePoints(fu, han int, opts Options) int {
	switch {
	case han >= 11:
		return 6000 // sanbaiman
	case han >= 8:
		return 4000 // baiman
	case han >= 6:
		return 3000 // haneman
	case han == 5:
		return 2000 // mangan
	}
	raw := fu * (1 << uint(2+han))
	if raw >= 2000 {
		return 2000
	}
	if opts.RoundUpMangan && raw >= 1920 {
		return 2000
	}
	return raw
}

// Payments is the payment distribution for one win, before honba and
// riichi-stick adjustments (applied by the caller, which is where seat
// identity and the stick pool live — C9's concern, not C7's).
type Payments struct {
	ByRon bool

	// Ron: the discarder pays this much.
	LoserPays int

	// Tsumo: the dealer pays DealerPays, each non-dealer pays
	// NonDealerPays (both already account for whether the winner is the
	// dealer, per spec 4.7: dealer tsumo collects 2*base from each;
	// non-dealer tsumo collects 2*base from the dealer and 1*base from
	// each other non-dealer).
	DealerPays    int
	NonDealerPays int
}

// ComputePayments implements spec 4.7's ron/tsumo payment formulas.
func ComputePayments(base int, byRon, winnerIsDealer bool) Payments {
	if byRon {
		mult := 4
		if winnerIsDealer {
			mult = 6
		}
		return Payments{ByRon: true, LoserPays: roundUpTo100(base * mult)}
	}
	if winnerIsDealer {
		each := roundUpTo100(base * 2)
		return Payments{ByRon: false, DealerPays: each, NonDealerPays: each}
	}
	return Payments{
		ByRon:         false,
		DealerPays:    roundUpTo100(base * 2),
		NonDealerPays: roundUpTo100(base * 1),
	}
}

// ApplyHonba adds spec 4.7's per-honba surcharge: +300 total for ron
// (all from the single loser), +100 per non-winning seat for tsumo.
func (p Payments) ApplyHonba(honba int) Payments {
	if honba <= 0 {
		return p
	}
	if p.ByRon {
		p.LoserPays += honba * 300
		return p
	}
	p.DealerPays += honba * 100
	p.NonDealerPays += honba * 100
	return p
}

// PaoLiability describes a yakuman whose completion is charged entirely
// to one seat (daisangen/daisuushii's "claimed the deciding tile from
// one player" rule) rather than split among the table.
type PaoLiability struct {
	Applies bool // whether a pao liability is in force for this win
}

// ApplyPaoTsumo returns what the liable seat pays on a pao tsumo: the
// whole tsumo total, DealerPays+NonDealerPays*2 for a non-dealer winner
// or DealerPays*3 for a dealer winner. There is no ron counterpart in
// this package.
func ApplyPaoTsumo(p Payments, winnerIsDealer bool) int {
	if winnerIsDealer {
		return p.DealerPays * 3
	}
	return p.DealerPays + p.NonDealerPays*2
}
