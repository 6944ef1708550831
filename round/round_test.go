package round

import (
	"testing"

	"riichi/rules"
	"riichi/tile"
	"riichi/wall"
)

func mustTiles(toks ...string) []tile.Tile {
	out := make([]tile.Tile, 0, len(toks))
	for _, tok := range toks {
		t, ok := tile.ValidTile(tok)
		if !ok {
			panic("bad tile " + tok)
		}
		out = append(out, t)
	}
	return out
}

// zeroRNG drives wall.New deterministically: every shuffle step picks
// index 0, so the live wall comes out in buildTileSet's own order.
type zeroRNG struct{}

func (zeroRNG) Float64() float64 { return 0 }

func newTestWall(t *testing.T, rs rules.RuleSet) *wall.Wall {
	t.Helper()
	w, err := wall.New(zeroRNG{}, wall.RedFiveCounts(rs.RedFives), rs.KanDoraEnabled, rs.UraDoraEnabled, rs.KanUraEnabled, rs.KanDoraDelayed)
	if err != nil {
		t.Fatalf("wall.New: %v", err)
	}
	return w
}

// fourHands is a 13-tile deal for all four seats: seat 0 gets hand,
// the rest get a plain, unremarkable 13-tile filler hand.
func fourHands(hand []tile.Tile) [4][]tile.Tile {
	filler := mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")
	return [4][]tile.Tile{hand, filler, filler, filler}
}

func newTestRound(t *testing.T, concealed [4][]tile.Tile, rs rules.RuleSet) *Round {
	t.Helper()
	r, err := NewRound(rs, newTestWall(t, rs), concealed, 1, 0)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	return r
}

func TestNewRoundRejectsWrongTileCount(t *testing.T) {
	rs := rules.Default()
	bad := fourHands(mustTiles("m1", "m2", "m3"))
	if _, err := NewRound(rs, newTestWall(t, rs), bad, 1, 0); err == nil {
		t.Fatalf("expected error dealing a 3-tile hand")
	}
}

func TestStartDrawsDealerIntoZimo(t *testing.T) {
	rs := rules.Default()
	r := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if r.State != Zimo || r.CurrentSeat != r.Dealer {
		t.Fatalf("after Start: state=%s seat=%d, want zimo/dealer", r.State, r.CurrentSeat)
	}
	if r.Hands[r.Dealer].Pending() == nil {
		t.Fatalf("dealer has no pending draw after Start")
	}
}

func TestDiscardEntersDapaiAndRecordsLast(t *testing.T) {
	rs := rules.Default()
	r := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	drawn := r.Hands[r.Dealer].Pending().Tile
	if err := r.Discard(r.Dealer, drawn, false); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if r.State != Dapai {
		t.Fatalf("state = %s, want dapai", r.State)
	}
	if r.last == nil || r.last.Seat != r.Dealer || r.last.Tile != drawn {
		t.Fatalf("last discard record not set correctly: %+v", r.last)
	}
}

func TestResolveClaimsPonBeatsChi(t *testing.T) {
	rs := rules.Default()
	// Seat 1 (kamicha-chi candidate) holds p4/p6 for a kanchan chi on p5.
	// Seat 2 holds p5/p5 for a pon. Seat 3 is a plain filler.
	seat1 := mustTiles("p4", "p6", "m1", "m2", "m3", "s1", "s2", "s3", "z1", "z1", "z2", "z3", "z4")
	seat2 := mustTiles("p5", "p5", "m1", "m2", "m3", "s1", "s2", "s3", "z1", "z1", "z2", "z3", "z4")
	filler := mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")
	r := newTestRound(t, [4][]tile.Tile{filler, seat1, seat2, filler}, rs)
	r.State = Dapai
	r.last = &discardRecord{Seat: 0, Tile: mustTiles("p5")[0]}

	chiMeld := r.Hands[1].LegalChi(mustTiles("p5")[0], rs.ForbidKuikaeStrict())
	if len(chiMeld) == 0 {
		t.Fatalf("expected a legal chi for seat 1")
	}
	ponMeld := r.Hands[2].LegalPon(mustTiles("p5")[0])
	if len(ponMeld) == 0 {
		t.Fatalf("expected a legal pon for seat 2")
	}

	replies := map[int]Claim{
		1: {Seat: 1, Type: ClaimChi, Meld: chiMeld[0]},
		2: {Seat: 2, Type: ClaimPon, Meld: ponMeld[0]},
	}
	if err := r.ResolveClaims(replies); err != nil {
		t.Fatalf("ResolveClaims: %v", err)
	}
	if r.State != Fulou || r.CurrentSeat != 2 {
		t.Fatalf("state=%s seat=%d, want fulou/seat2 (pon beats chi)", r.State, r.CurrentSeat)
	}
}

func TestResolveClaimsAdvancesWithNoReplies(t *testing.T) {
	rs := rules.Default()
	r := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	drawn := r.Hands[0].Pending().Tile
	if err := r.Discard(0, drawn, false); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if err := r.ResolveClaims(map[int]Claim{}); err != nil {
		t.Fatalf("ResolveClaims: %v", err)
	}
	if r.State != Zimo || r.CurrentSeat != 1 {
		t.Fatalf("state=%s seat=%d, want zimo/seat1 after advancing", r.State, r.CurrentSeat)
	}
}

// riichiWinHand is a 13-tile hand that completes into a standard, riichi-
// only-yaku win on s9: m123 p456 s123 s789 + z5z5 pair.
func riichiWinHand() []tile.Tile {
	return mustTiles("m1", "m2", "m3", "p4", "p5", "p6", "s1", "s2", "s3", "s7", "s8", "z5", "z5")
}

func newRiichiRoundForRon(t *testing.T, rs rules.RuleSet, riichiSeats ...int) *Round {
	t.Helper()
	hands := fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3"))
	for _, s := range riichiSeats {
		hands[s] = riichiWinHand()
	}
	r := newTestRound(t, hands, rs)
	for _, s := range riichiSeats {
		r.RiichiLevel[s] = 1
	}
	r.State = Dapai
	r.last = &discardRecord{Seat: 0, Tile: mustTiles("s9")[0]}
	return r
}

func TestResolveRonAtamaHaneTruncatesToClosestSeat(t *testing.T) {
	rs := rules.Default()
	rs.MaxSimultaneousWin = 1
	r := newRiichiRoundForRon(t, rs, 1, 2)
	if err := r.resolveRon(0, mustTiles("s9")[0], []int{1, 2}); err != nil {
		t.Fatalf("resolveRon: %v", err)
	}
	if r.Result == nil || r.Result.Kind != OutcomeWin || len(r.Result.Wins) != 1 || r.Result.Wins[0].Seat != 1 {
		t.Fatalf("expected exactly seat 1 to win (atama-hane), got %+v", r.Result)
	}
}

func TestResolveRonSanchahouAbortsAtLimitTwo(t *testing.T) {
	rs := rules.Default()
	rs.MaxSimultaneousWin = 2 // default; 3-way ron must abort
	r := newRiichiRoundForRon(t, rs, 1, 2, 3)
	if err := r.resolveRon(0, mustTiles("s9")[0], []int{1, 2, 3}); err != nil {
		t.Fatalf("resolveRon: %v", err)
	}
	if r.Result == nil || r.Result.Kind != OutcomeDraw || r.Result.DrawKind != DrawSanchahou {
		t.Fatalf("expected sanchahou abort, got %+v", r.Result)
	}
}

func TestResolveRonAllowsTripleWinWhenLimitThree(t *testing.T) {
	rs := rules.Default()
	rs.MaxSimultaneousWin = 3
	r := newRiichiRoundForRon(t, rs, 1, 2, 3)
	if err := r.resolveRon(0, mustTiles("s9")[0], []int{1, 2, 3}); err != nil {
		t.Fatalf("resolveRon: %v", err)
	}
	if r.Result == nil || r.Result.Kind != OutcomeWin || len(r.Result.Wins) != 3 {
		t.Fatalf("expected all three seats to win, got %+v", r.Result)
	}
}

func TestDeclareKyuushuRequiresNineKindsAndFirstGoAround(t *testing.T) {
	rs := rules.Default()
	nineKinds := mustTiles("m1", "m9", "p1", "p9", "s1", "s9", "z1", "z2", "z3", "z4", "z5", "z6", "z7")
	r := newTestRound(t, fourHands(nineKinds), rs)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.DeclareKyuushu(0); err != nil {
		t.Fatalf("DeclareKyuushu: %v", err)
	}
	if r.Result == nil || r.Result.DrawKind != DrawKyuushu {
		t.Fatalf("expected kyuushu-kyuuhai draw, got %+v", r.Result)
	}
}

func TestDeclareKyuushuRejectsAfterFirstGoAround(t *testing.T) {
	rs := rules.Default()
	nineKinds := mustTiles("m1", "m9", "p1", "p9", "s1", "s9", "z1", "z2", "z3", "z4", "z5", "z6", "z7")
	r := newTestRound(t, fourHands(nineKinds), rs)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.FirstGoAround = false
	if err := r.DeclareKyuushu(0); err == nil {
		t.Fatalf("expected kyuushu-kyuuhai to be rejected outside the first go-around")
	}
}

func TestIppatsuClearsOnAnyCall(t *testing.T) {
	rs := rules.Default()
	r := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	r.Ippatsu[0] = true
	r.onCallMade()
	if r.Ippatsu[0] {
		t.Fatalf("ippatsu must clear once any call happens")
	}
}

func TestSuufonRendaDetection(t *testing.T) {
	rs := rules.Default()
	r := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	east := mustTiles("z1")[0]
	// Round.Discard appends to the pile before tracking; mirror that order.
	for s := 0; s < 4; s++ {
		r.Discards[s].Discard(tile.DiscardToken{Tile: east})
		r.trackSuufonRenda(s, east)
	}
	if !r.checkSuufonRenda() {
		t.Fatalf("expected suufonrenda after four identical wind discards with no calls")
	}
}

func TestSuufonRendaNotTriggeredOnMismatch(t *testing.T) {
	rs := rules.Default()
	r := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	east := mustTiles("z1")[0]
	south := mustTiles("z2")[0]
	r.Discards[0].Discard(tile.DiscardToken{Tile: east})
	r.trackSuufonRenda(0, east)
	if r.firstWindDiscard == nil {
		t.Fatalf("expected the first wind discard to be recorded as the candidate")
	}
	r.Discards[1].Discard(tile.DiscardToken{Tile: south})
	r.trackSuufonRenda(1, south)
	if r.firstWindDiscard != nil {
		t.Fatalf("expected the candidate wind to be invalidated on a mismatched second discard")
	}
}

func TestOneSeatHoldsAllKans(t *testing.T) {
	if oneSeatHoldsAllKans([4]int{1, 1, 1, 1}) {
		t.Fatalf("four seats holding one kan each is suukaikan, not suukantsu")
	}
	if !oneSeatHoldsAllKans([4]int{4, 0, 0, 0}) {
		t.Fatalf("one seat holding all four kans must not abort as suukaikan")
	}
}

func TestNotenPenaltyDeltasSumToZero(t *testing.T) {
	d := notenPenaltyDeltas([]int{0, 1})
	sum := 0
	for _, v := range d {
		sum += v
	}
	if sum != 0 {
		t.Fatalf("noten penalty deltas must net to zero, got %v (sum %d)", d, sum)
	}
	if d[0] <= 0 || d[1] <= 0 || d[2] >= 0 || d[3] >= 0 {
		t.Fatalf("tenpai seats 0,1 should gain and noten seats 2,3 should pay, got %v", d)
	}
}

func TestRiichiSticksCollectedOnWinAndCarryOverOnAbort(t *testing.T) {
	rs := rules.Default()
	r := newRiichiRoundForRon(t, rs, 1)
	r.RiichiSticks = 2 // two prior riichi deposits still in the pool
	if err := r.resolveRon(0, mustTiles("s9")[0], []int{1}); err != nil {
		t.Fatalf("resolveRon: %v", err)
	}
	if r.RiichiSticks != 0 {
		t.Fatalf("pool should be emptied once collected, got %d", r.RiichiSticks)
	}
	if got := r.Result.Wins[0].StickBonus; got != 2000 {
		t.Fatalf("winner should collect 2000 (2 sticks), got %d", got)
	}

	r2 := newTestRound(t, fourHands(mustTiles("m1", "m2", "m3", "p1", "p2", "p3", "s1", "s2", "s3", "z1", "z1", "z2", "z3")), rs)
	r2.RiichiSticks = 1
	if err := r2.finishAbortive(DrawSuufonRenda); err != nil {
		t.Fatalf("finishAbortive: %v", err)
	}
	if r2.RiichiSticks != 1 {
		t.Fatalf("an abortive draw must carry the pool over, got %d", r2.RiichiSticks)
	}
}

func TestSeatWindRotatesWithDealer(t *testing.T) {
	if w := seatWind(2, 2); w != 1 {
		t.Fatalf("dealer's own seat wind = %d, want 1 (east)", w)
	}
	if w := seatWind(2, 3); w != 2 {
		t.Fatalf("seat after dealer's seat wind = %d, want 2 (south)", w)
	}
}
