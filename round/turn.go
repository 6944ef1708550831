package round

import (
	"fmt"

	"riichi/hand"
	"riichi/internal/log"
	"riichi/tile"
)

// DeclareRiichi marks seat's hand as riichi; must be called while seat
// holds the pending draw, before the matching Discard. Ippatsu/double
// riichi bookkeeping happens in Discard, which knows whether this is
// the very first discard of the hand (double riichi).
func (r *Round) DeclareRiichi(seat int) error {
	if r.State != Zimo || r.CurrentSeat != seat {
		return fmt.Errorf("round: DeclareRiichi seat %d not their zimo", seat)
	}
	if err := r.Hands[seat].DeclareRiichi(); err != nil {
		return err
	}
	level := 1
	if r.FirstGoAround && !r.anyCallEver && r.Discards[seat].Len() == 0 {
		level = 2 // double riichi: still the first go-around, no calls, no prior discard
	}
	r.RiichiLevel[seat] = level
	r.RiichiSticks++ // the 1000-point deposit; collected by whoever wins the pool
	log.Info("seat %d declares riichi (level %d)", seat, level)
	return nil
}

// Discard removes t from seat's hand and opens claim resolution. declare
// must equal true iff this discard immediately follows DeclareRiichi.
func (r *Round) Discard(seat int, t tile.Tile, declare bool) error {
	if r.State != Zimo && r.State != Gangzimo {
		return fmt.Errorf("round: Discard from state %s", r.State)
	}
	if r.CurrentSeat != seat {
		return fmt.Errorf("round: Discard seat %d, current seat %d", seat, r.CurrentSeat)
	}
	drawn := r.Hands[seat].Pending()
	tsumogiri := drawn != nil && drawn.Kind == hand.PendingDraw && drawn.Tile.Normalized() == t.Normalized() && drawn.Tile.IsRed() == t.IsRed()
	if err := r.Hands[seat].Discard(t); err != nil {
		return err
	}
	if err := r.Discards[seat].Discard(tile.DiscardToken{Tile: t, Tsumogiri: tsumogiri, Riichi: declare}); err != nil {
		return err
	}
	r.flushDeferredKanDora()

	if declare {
		r.Ippatsu[seat] = true
	} else if r.Ippatsu[seat] {
		r.Ippatsu[seat] = false
	}

	r.trackFirstGoAround(t)
	r.trackSuufonRenda(seat, t)

	if r.allRiichi() && r.suuchaPendingSeat < 0 {
		r.suuchaPendingSeat = seat
	}

	r.last = &discardRecord{Seat: seat, Tile: t}
	r.State = Dapai
	log.Debug("seat %d discards %s (tsumogiri=%v riichi=%v)", seat, t, tsumogiri, declare)
	return nil
}

// trackFirstGoAround clears FirstGoAround on the first non-wind discard
// (a wind discard alone keeps kyuushu-kyuuhai/suufonrenda eligible).
func (r *Round) trackFirstGoAround(t tile.Tile) {
	if !r.FirstGoAround {
		return
	}
	if t.Suit == tile.Honor && t.Num >= 1 && t.Num <= 4 {
		return
	}
	r.FirstGoAround = false
}

// trackSuufonRenda records whether the first four discards (one per
// seat, no calls yet) are all the same wind tile.
func (r *Round) trackSuufonRenda(seat int, t tile.Tile) {
	if r.anyCallEver || r.totalDiscards() > 4 {
		return
	}
	if r.totalDiscards() == 1 {
		if t.Suit == tile.Honor && t.Num >= 1 && t.Num <= 4 {
			w := t
			r.firstWindDiscard = &w
		} else {
			r.firstWindDiscard = nil
		}
		return
	}
	if r.firstWindDiscard == nil {
		return
	}
	if t.Suit != r.firstWindDiscard.Suit || t.Num != r.firstWindDiscard.Num {
		r.firstWindDiscard = nil
	}
}

func (r *Round) totalDiscards() int {
	n := 0
	for s := 0; s < 4; s++ {
		n += r.Discards[s].Len()
	}
	return n
}

func (r *Round) allRiichi() bool {
	for s := 0; s < 4; s++ {
		if r.RiichiLevel[s] == 0 {
			return false
		}
	}
	return true
}

// clearIppatsuAll drops every seat's ippatsu eligibility: any call voids
// the window for whichever riichi seats are currently inside it.
func (r *Round) clearIppatsuAll() {
	r.Ippatsu = [4]bool{}
}

// onCallMade records that a chi/pon/kan happened, for suufonrenda/
// first-go-around/ippatsu bookkeeping.
func (r *Round) onCallMade() {
	r.anyCallEver = true
	r.FirstGoAround = false
	r.clearIppatsuAll()
}

// NextSeat returns the seat to the right (shimocha) of seat.
func NextSeat(seat int) int { return (seat + 1) % 4 }

// advanceDraw moves play to the next seat's draw, or closes the hand as
// an exhaustive draw if the live wall is spent.
func (r *Round) advanceDraw(from int) error {
	if r.Wall.LiveCount() == 0 {
		return r.finishRyuukyoku()
	}
	return r.drawFor(NextSeat(from))
}
