package round

import (
	"fmt"

	"riichi/internal/log"
	"riichi/tile"
)

// DeclareKan applies an ankan or kakan from the current Zimo seat (a
// daiminkan claimed off someone else's discard goes through
// ResolveClaims/applyCall instead). It handles the chankan window on a
// kakan, the rinshan draw, suukaikan detection and kan-dora reveal
// timing in one call, since spec 4.9 treats all of that as the single
// Gang -> (Hule | Gangzimo) transition.
func (r *Round) DeclareKan(seat int, m tile.Meld) error {
	if r.State != Zimo || r.CurrentSeat != seat {
		return fmt.Errorf("round: DeclareKan seat %d not their zimo", seat)
	}
	if m.Type != tile.Ankan && m.Type != tile.Kakan {
		return fmt.Errorf("round: DeclareKan does not accept %s here", m.Type)
	}
	r.flushDeferredKanDora()
	if err := r.Hands[seat].Kan(m); err != nil {
		return err
	}
	r.kanCount[seat]++
	r.totalKans++
	isAnkan := m.Type == tile.Ankan
	r.onCallMade() // any kan, ankan included, breaks ippatsu and first-go-around like any other call
	log.Info("seat %d declares %s (total kans this hand: %d)", seat, m, r.totalKans)
	return r.resolveKanDeclared(seat, !isAnkan)
}

// resolveKanDeclared is the shared continuation for ankan/kakan/
// daiminkan once the calling seat's hand has absorbed the meld: check
// chankan (kakan only), check suukaikan, draw rinshan, and schedule the
// kan-dora reveal per kan_dora_delayed (ankan always reveals at once).
func (r *Round) resolveKanDeclared(seat int, chankanEligible bool) error {
	r.State = Gang
	if chankanEligible {
		if t, ok, robber := r.checkChankan(seat); ok {
			log.Info("chankan: seat %d robs seat %d's kan on %s", robber, seat, t)
			return r.finishHuleChankan(robber, seat, t)
		}
	}
	if r.totalKans == 4 && !oneSeatHoldsAllKans(r.kanCount) {
		log.Info("suukaikan: four kans split across seats, aborting")
		return r.finishAbortive(DrawSuuKaikan)
	}

	t, err := r.Wall.KanDraw()
	if err != nil {
		return fmt.Errorf("round: kan rinshan draw: %w", err)
	}
	if err := r.Hands[seat].DrawRinshan(t); err != nil {
		return err
	}
	melds := r.Hands[seat].Melds()
	calledKan := chankanEligible || melds[len(melds)-1].Type == tile.Daiminkan // kakan, or a daiminkan just appended by Call
	if err := r.revealOrDeferKanDora(calledKan); err != nil {
		return err
	}
	r.State = Gangzimo
	r.CurrentSeat = seat
	return nil
}

// revealOrDeferKanDora implements spec 4.9's reveal timing: ankan
// reveals immediately; a kakan/daiminkan reveals immediately unless
// kan_dora_delayed is set, in which case the reveal waits for the next
// discard or kan declaration (flushDeferredKanDora does the deferred
// reveal).
func (r *Round) revealOrDeferKanDora(fromCalledKan bool) error {
	if !fromCalledKan || !r.Rules.KanDoraDelayed {
		return r.Wall.RevealKanDora()
	}
	r.deferredKanDora = true
	return nil
}

func (r *Round) flushDeferredKanDora() {
	if !r.deferredKanDora {
		return
	}
	r.deferredKanDora = false
	_ = r.Wall.RevealKanDora()
}

// oneSeatHoldsAllKans reports whether a single seat declared all four
// kans so far (suukantsu is still in play and suukaikan should not
// abort the hand).
func oneSeatHoldsAllKans(counts [4]int) bool {
	for _, c := range counts {
		if c == 4 {
			return true
		}
	}
	return false
}

// checkChankan looks for a valid ron on the tile kakan-seat just added
// to their pon, excluding kakan-seat itself. Returns the first eligible
// robber in turn order from the kakan-declarer (matching ron priority's
// closest-to-discarder convention).
func (r *Round) checkChankan(kakanSeat int) (t tile.Tile, ok bool, robber int) {
	t = r.lastKakanTile(kakanSeat)
	for d := 1; d <= 3; d++ {
		seat := (kakanSeat + d) % 4
		if r.Discards[seat].Contains(t) || r.Temporary[seat] {
			continue
		}
		h34 := r.hand34(seat)
		h34[t.Key()]++
		if !r.searcher.IsAgariAll(h34, r.fixedMelds(seat)) {
			continue
		}
		if _, win := r.evaluateWin(seat, t, true, winFlags{Chankan: true}); win {
			return t, true, seat
		}
	}
	return tile.Tile{}, false, -1
}

// lastKakanTile extracts the tile just added to seat's most recent pon
// (the kakan target), by normalized rank of the last meld's appended
// slot.
func (r *Round) lastKakanTile(seat int) tile.Tile {
	melds := r.Hands[seat].Melds()
	last := melds[len(melds)-1]
	return last.Tiles[last.AppendedIndex]
}
