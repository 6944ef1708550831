package round

import (
	"fmt"

	"riichi/internal/log"
	"riichi/tile"
)

// DeclareKyuushu ends the hand as kyuushu-kyuuhai: seat's reply to their
// own first tsumo, while the first-go-around flag is still set, holding
// nine or more distinct terminal/honor kinds.
func (r *Round) DeclareKyuushu(seat int) error {
	if r.State != Zimo || r.CurrentSeat != seat {
		return fmt.Errorf("round: DeclareKyuushu seat %d not their zimo", seat)
	}
	if !r.FirstGoAround {
		return fmt.Errorf("round: kyuushu-kyuuhai only on the first go-around")
	}
	if countDistinctTerminalHonor(r.Hands[seat].ConcealedTiles()) < 9 {
		return fmt.Errorf("round: hand has fewer than 9 distinct terminal/honor kinds")
	}
	return r.finishAbortive(DrawKyuushu)
}

func countDistinctTerminalHonor(tiles []tile.Tile) int {
	seen := map[int]bool{}
	for _, t := range tiles {
		if isTerminalOrHonorTile(t) {
			seen[tile.Tile{Suit: t.Suit, Num: t.Normalized()}.Key()] = true
		}
	}
	return len(seen)
}

func isTerminalOrHonorTile(t tile.Tile) bool {
	if t.Suit == tile.Honor {
		return true
	}
	n := t.Normalized()
	return n == 1 || n == 9
}

// finishAbortive closes the hand as a no-contest draw: no points change
// hands, the dealer always repeats, honba increments. Used for every
// abortive draw except the exhaustive (ryuukyoku) one, which has its
// own tenpai/noten and nagashi-mangan accounting.
func (r *Round) finishAbortive(kind DrawKind) error {
	r.State = Pingju
	r.Result = &Outcome{Kind: OutcomeDraw, DrawKind: kind, DealerContinues: true}
	r.Honba++
	r.State = Last
	log.Info("hand ends in an abortive draw: %d, honba now %d", kind, r.Honba)
	return nil
}

// finishRyuukyoku closes the hand when the live wall is exhausted with
// no ron on the final discard: nagashi mangan is checked first, else
// tenpai/noten payments apply per noten_penalty_enabled.
func (r *Round) finishRyuukyoku() error {
	r.State = Pingju
	if r.Rules.NagashiManganEnabled {
		if seats := r.nagashiManganSeats(); len(seats) > 0 {
			return r.finishNagashiMangan(seats)
		}
	}

	var tenpai []int
	for s := 0; s < 4; s++ {
		if r.searcher.ShantenAll(r.hand34(s), r.fixedMelds(s)) == 0 {
			tenpai = append(tenpai, s)
		}
	}
	var deltas [4]int
	if r.Rules.NotenPenaltyEnabled {
		deltas = notenPenaltyDeltas(tenpai)
	}
	r.Result = &Outcome{
		Kind:            OutcomeDraw,
		DrawKind:        DrawRyuukyoku,
		TenpaiSeats:      tenpai,
		PointDeltas:     deltas,
		DealerContinues: containsSeat(tenpai, r.Dealer),
	}
	r.Honba++
	r.State = Last
	log.Info("ryuukyoku: tenpai seats %v, honba now %d", tenpai, r.Honba)
	return nil
}

// notenPenaltyDeltas implements the standard 1000/1500/3000-split noten
// table: the noten seats fund a fixed 3000-point pot split evenly among
// the tenpai seats (no payment at 0 or 4 tenpai seats).
func notenPenaltyDeltas(tenpai []int) [4]int {
	var d [4]int
	n := len(tenpai)
	if n == 0 || n == 4 {
		return d
	}
	perTenpai := 3000 / n
	perNoten := 3000 / (4 - n)
	isTenpai := map[int]bool{}
	for _, s := range tenpai {
		isTenpai[s] = true
	}
	for s := 0; s < 4; s++ {
		if isTenpai[s] {
			d[s] += perTenpai
		} else {
			d[s] -= perNoten
		}
	}
	return d
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

// nagashiManganSeats returns seats whose discard pile is entirely
// terminals/honors and none of it was ever called.
func (r *Round) nagashiManganSeats() []int {
	var out []int
	for s := 0; s < 4; s++ {
		pile := r.Discards[s].Entries()
		if len(pile) == 0 {
			continue
		}
		ok := true
		for _, e := range pile {
			if e.Dir != tile.DirNone || !isTerminalOrHonorTile(e.Tile) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, s)
		}
	}
	return out
}

// finishNagashiMangan scores each qualifying seat as a tsumo-style
// mangan (base 2000, dealer or non-dealer payments by the winner's
// seat), applied independently against the table.
func (r *Round) finishNagashiMangan(seats []int) error {
	var deltas [4]int
	for _, winner := range seats {
		isDealer := winner == r.Dealer
		p := yakuPayments(2000, isDealer)
		for s := 0; s < 4; s++ {
			if s == winner {
				continue
			}
			if isDealer {
				deltas[s] -= p.DealerPays
				deltas[winner] += p.DealerPays
				continue
			}
			if s == r.Dealer {
				deltas[s] -= p.DealerPays
				deltas[winner] += p.DealerPays
			} else {
				deltas[s] -= p.NonDealerPays
				deltas[winner] += p.NonDealerPays
			}
		}
	}
	r.Result = &Outcome{
		Kind:            OutcomeDraw,
		DrawKind:        DrawNagashiMangan,
		NagashiSeats:    seats,
		PointDeltas:     deltas,
		DealerContinues: containsSeat(seats, r.Dealer),
	}
	r.Honba++
	r.State = Last
	log.Info("nagashi mangan: seats %v, honba now %d", seats, r.Honba)
	return nil
}
