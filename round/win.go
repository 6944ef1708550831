package round

import (
	"fmt"

	"riichi/internal/log"
	"riichi/tile"
	"riichi/yaku"
)

// DeclareTsumo ends the hand as a self-draw win for the current Zimo (or
// Gangzimo) seat.
func (r *Round) DeclareTsumo(seat int) error {
	if (r.State != Zimo && r.State != Gangzimo) || r.CurrentSeat != seat {
		return fmt.Errorf("round: DeclareTsumo seat %d not their draw", seat)
	}
	drawn := r.Hands[seat].Pending()
	if drawn == nil {
		return fmt.Errorf("round: DeclareTsumo with no pending draw")
	}
	rinshan := r.State == Gangzimo
	haitei := !rinshan && r.Wall.LiveCount() == 0
	win, ok := r.evaluateWin(seat, drawn.Tile, false, winFlags{Ippatsu: r.Ippatsu[seat], Haitei: haitei, Rinshan: rinshan})
	if !ok {
		return fmt.Errorf("round: seat %d has no valid tsumo (no yaku)", seat)
	}
	return r.finishHuleTsumo(seat, win)
}

// finishHuleTsumo applies a self-draw win's payments across the table.
func (r *Round) finishHuleTsumo(seat int, win yaku.Win) error {
	isDealer := seat == r.Dealer
	p := yakuPayments(win.BasePoints, isDealer).ApplyHonba(r.Honba)
	sw := SeatWin{Seat: seat, ByRon: false, Win: win, Payments: p, StickBonus: r.collectSticks()}
	r.Result = &Outcome{Kind: OutcomeWin, Wins: []SeatWin{sw}, DealerContinues: isDealer}
	r.State = Last
	log.Info("seat %d tsumo: %d han %d fu, %d base points", seat, win.Han, win.Fu.Total, win.BasePoints)
	return nil
}

// finishHuleRon scores every claimant in seats (already priority- and
// atama-hane-filtered) independently against discarder.
func (r *Round) finishHuleRon(discarder int, t tile.Tile, seats []int) error {
	houtei := r.Wall.LiveCount() == 0
	var wins []SeatWin
	for _, seat := range seats {
		win, ok := r.evaluateWin(seat, t, true, winFlags{Ippatsu: r.Ippatsu[seat], Houtei: houtei})
		if !ok {
			return fmt.Errorf("round: ron claim by seat %d has no valid yaku", seat)
		}
		p := yaku.ComputePayments(win.BasePoints, true, seat == r.Dealer)
		sw := SeatWin{Seat: seat, ByRon: true, LoserSeat: discarder, Win: win, Payments: p}
		if seat == seats[0] {
			sw.Payments = sw.Payments.ApplyHonba(r.Honba) // honba/riichi-stick pool goes to the atama-hane winner only
			sw.StickBonus = r.collectSticks()
		}
		wins = append(wins, sw)
	}
	r.Result = &Outcome{Kind: OutcomeWin, Wins: wins, DealerContinues: containsSeat(seats, r.Dealer)}
	r.State = Last
	log.Info("seat %d discards into ron from seats %v", discarder, seats)
	return nil
}

// finishHuleChankan scores a chankan: robber rons the tile kakanSeat
// just tried to add to their pon, liable exactly like a normal ron
// against kakanSeat as the discarder.
func (r *Round) finishHuleChankan(robber, kakanSeat int, t tile.Tile) error {
	win, ok := r.evaluateWin(robber, t, true, winFlags{Ippatsu: r.Ippatsu[robber], Chankan: true})
	if !ok {
		return fmt.Errorf("round: chankan by seat %d has no valid yaku", robber)
	}
	p := yaku.ComputePayments(win.BasePoints, true, robber == r.Dealer).ApplyHonba(r.Honba)
	sw := SeatWin{Seat: robber, ByRon: true, LoserSeat: kakanSeat, Win: win, Payments: p, StickBonus: r.collectSticks()}
	r.Result = &Outcome{Kind: OutcomeWin, Wins: []SeatWin{sw}, DealerContinues: robber == r.Dealer}
	r.State = Last
	log.Info("seat %d wins by chankan off seat %d", robber, kakanSeat)
	return nil
}

// yakuPayments is yaku.ComputePayments specialized to tsumo, the common
// case every non-ron win path here needs.
func yakuPayments(base int, winnerIsDealer bool) yaku.Payments {
	return yaku.ComputePayments(base, false, winnerIsDealer)
}

// collectSticks awards the entire riichi-stick pool (1000 points each)
// to a hand's winner and empties it; an abortive draw or ryuukyoku never
// calls this, so the pool carries over to the next hand untouched.
func (r *Round) collectSticks() int {
	bonus := r.RiichiSticks * 1000
	r.RiichiSticks = 0
	return bonus
}
