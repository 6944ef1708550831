package round

import (
	"fmt"
	"sort"

	"riichi/decompose"
	"riichi/internal/log"
	"riichi/tile"
	"riichi/yaku"
)

// ClaimType is what a non-actor seat is replying with to the last
// discard.
type ClaimType int

const (
	ClaimNone ClaimType = iota
	ClaimChi
	ClaimPon
	ClaimKan // daiminkan
	ClaimRon
)

// Claim is one seat's reply, grounded on opt_selector.go's
// PlayerReaction/PlayerOperation shape (ChosenOp picked by the caller's
// own agent/UI layer; Round only validates and applies it).
type Claim struct {
	Seat int
	Type ClaimType
	Meld tile.Meld // required for Chi/Kan, optional (disambiguates red-five) for Pon
}

// AvailableClaims reports what each non-discarder seat could legally
// reply with to the pending Dapai discard — the real implementation of
// opt_selector.go's calculateAvailableOperations / checker.go's
// canHu/canChi/canGang/canPeng, which the source stubs two of out of
// four.
func (r *Round) AvailableClaims() (map[int][]Claim, error) {
	if r.State != Dapai {
		return nil, fmt.Errorf("round: AvailableClaims from state %s, want dapai", r.State)
	}
	out := make(map[int][]Claim)
	discarder, t := r.last.Seat, r.last.Tile
	for seat := 0; seat < 4; seat++ {
		if seat == discarder {
			continue
		}
		var claims []Claim
		if r.canRon(seat, t) {
			claims = append(claims, Claim{Seat: seat, Type: ClaimRon})
		}
		for _, m := range r.Hands[seat].LegalKan(&t, r.Rules.AnkanAfterRiichiLevel) {
			claims = append(claims, Claim{Seat: seat, Type: ClaimKan, Meld: m})
		}
		for _, m := range r.Hands[seat].LegalPon(t) {
			claims = append(claims, Claim{Seat: seat, Type: ClaimPon, Meld: m})
		}
		if seat == NextSeat(discarder) {
			for _, m := range r.Hands[seat].LegalChi(t, r.Rules.ForbidKuikaeStrict()) {
				claims = append(claims, Claim{Seat: seat, Type: ClaimChi, Meld: m})
			}
		}
		if len(claims) > 0 {
			out[seat] = claims
		}
	}
	return out, nil
}

// canRon is checker.go's canHu for the ron case: does adding t to seat's
// concealed tiles produce a legal, yaku-bearing win, and is seat not
// furiten.
func (r *Round) canRon(seat int, t tile.Tile) bool {
	if r.Discards[seat].Contains(t) || r.Temporary[seat] {
		return false
	}
	h34 := r.hand34(seat)
	h34[t.Key()]++
	if !r.searcher.IsAgariAll(h34, r.fixedMelds(seat)) {
		return false
	}
	_, ok := r.evaluateWin(seat, t, true, winFlags{})
	return ok
}

// ResolveClaims applies spec 4.9's claim-priority rule to replies
// gathered for the pending Dapai discard: ron (up to
// max_simultaneous_win, atama-hane on excess) beats kan/pon beats
// kamicha-only chi beats advancing to the next draw. It also flags
// temporary furiten for any non-actor who had a ron available but did
// not claim it.
func (r *Round) ResolveClaims(replies map[int]Claim) error {
	if r.State != Dapai {
		return fmt.Errorf("round: ResolveClaims from state %s, want dapai", r.State)
	}
	discarder, t := r.last.Seat, r.last.Tile

	available, err := r.AvailableClaims()
	if err != nil {
		return err
	}
	for seat, opts := range available {
		hadRon := false
		for _, c := range opts {
			if c.Type == ClaimRon {
				hadRon = true
			}
		}
		if hadRon && (replies[seat].Type != ClaimRon) {
			r.Temporary[seat] = true
		}
	}

	var ronSeats []int
	for seat, c := range replies {
		if c.Type == ClaimRon {
			ronSeats = append(ronSeats, seat)
		}
	}
	if len(ronSeats) > 0 {
		return r.resolveRon(discarder, t, ronSeats)
	}

	// Open-kan outranks pon even when both are replied by different
	// seats on the same discard: two separate passes, not one combined
	// loop, so map iteration order can never decide between them.
	for _, c := range replies {
		if c.Type == ClaimKan {
			return r.applyCall(discarder, c)
		}
	}
	for _, c := range replies {
		if c.Type == ClaimPon {
			return r.applyCall(discarder, c)
		}
	}
	for _, c := range replies {
		if c.Type == ClaimChi && c.Seat == NextSeat(discarder) {
			return r.applyCall(discarder, c)
		}
	}

	if r.suuchaPendingSeat == discarder {
		r.suuchaPendingSeat = -1
		return r.finishAbortive(DrawSuuchaRiichi)
	}
	if r.checkSuufonRenda() {
		return r.finishAbortive(DrawSuufonRenda)
	}
	return r.advanceDraw(discarder)
}

// resolveRon sorts ron claimants by turn-order distance from the
// discarder (atama-hane) and either abandons to sanchahou or scores the
// (possibly truncated) winner set.
func (r *Round) resolveRon(discarder int, t tile.Tile, seats []int) error {
	sort.Slice(seats, func(i, j int) bool {
		return distance(discarder, seats[i]) < distance(discarder, seats[j])
	})
	if len(seats) == 3 && r.Rules.MaxSimultaneousWin <= 2 {
		log.Info("sanchahou: three-way ron on seat %d's discard, max_simultaneous_win=%d", discarder, r.Rules.MaxSimultaneousWin)
		return r.finishAbortive(DrawSanchahou)
	}
	if len(seats) > r.Rules.MaxSimultaneousWin {
		log.Info("atama-hane: dropping ron claims from seats %v, keeping %v", seats[r.Rules.MaxSimultaneousWin:], seats[:r.Rules.MaxSimultaneousWin])
		seats = seats[:r.Rules.MaxSimultaneousWin]
	}
	return r.finishHuleRon(discarder, t, seats)
}

func distance(discarder, seat int) int {
	return (seat - discarder + 4) % 4
}

// applyCall commits a chi/pon/daiminkan: mutates the caller's hand, the
// discarder's pile, and routes to the caller's own discard (Fulou) or,
// for a daiminkan, straight into the kan-resolution path (Gang).
func (r *Round) applyCall(discarder int, c Claim) error {
	if err := r.Hands[c.Seat].Call(c.Meld); err != nil {
		return err
	}
	if err := r.Discards[discarder].MarkCalled(callerDirection(discarder, c.Seat)); err != nil {
		return err
	}
	r.onCallMade()
	r.last = nil
	log.Debug("seat %d calls %s off seat %d's discard", c.Seat, c.Meld, discarder)
	if c.Type == ClaimKan {
		r.kanCount[c.Seat]++
		r.totalKans++
		return r.resolveKanDeclared(c.Seat, false)
	}
	r.State = Fulou
	r.CurrentSeat = c.Seat
	return nil
}

// callerDirection is the direction flag the discarder's pile records
// for a call from caller, relative to the discarder's own seat.
func callerDirection(discarder, caller int) byte {
	switch (caller - discarder + 4) % 4 {
	case 1:
		return tile.DirShimocha
	case 2:
		return tile.DirToimen
	case 3:
		return tile.DirKamicha
	default:
		return tile.DirNone
	}
}

// checkSuufonRenda reports whether the first four discards (no calls
// yet) were all the same wind tile.
func (r *Round) checkSuufonRenda() bool {
	return !r.anyCallEver && r.totalDiscards() == 4 && r.firstWindDiscard != nil
}

// winFlags carries the situational context spec 4.7 scores beyond the
// hand itself: which pre-hand yaku conditions hold for this particular
// win.
type winFlags struct {
	Ippatsu, Haitei, Houtei, Rinshan, Chankan bool
}

// evaluateWin builds the yaku.Context for seat winning on winTile and
// scores every decomposition, returning the best.
func (r *Round) evaluateWin(seat int, winTile tile.Tile, byRon bool, f winFlags) (yaku.Win, bool) {
	h := r.Hands[seat]
	concealed := h.ConcealedTiles() // for tsumo this already includes the just-drawn tile
	if byRon {
		concealed = append(append([]tile.Tile(nil), concealed...), winTile)
	}
	decomps := decompose.Enumerate(concealed, h.Melds(), winTile, byRon)
	ctx := yaku.Context{
		ConcealedTiles: concealed,
		Melds:          h.Melds(),
		Menzen:         h.Menzen(),
		WinningTile:    winTile,
		ByRon:          byRon,
		RoundWind:      r.RoundWind,
		SeatWind:       seatWind(r.Dealer, seat),
		RiichiLevel:    r.RiichiLevel[seat],
		Ippatsu:        f.Ippatsu && r.Rules.IppatsuEnabled,
		Haitei:         f.Haitei,
		Houtei:         f.Houtei,
		Rinshan:        f.Rinshan,
		Chankan:        f.Chankan,
		DoraIndicators: r.Wall.DoraIndicators(),
		UraIndicators:  nil,
		Rules:          r.Rules.ToYakuOptions(),
	}
	if r.RiichiLevel[seat] > 0 && r.Rules.UraDoraEnabled {
		ctx.UraIndicators = r.Wall.UraIndicators()
	}
	return yaku.EvaluateAll(decomps, ctx)
}
