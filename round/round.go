// Package round implements C9: the per-hand state machine driving deal,
// draw, discard, call and win/draw resolution over the C1-C8 packages.
// Grounded on framework/game/engines/mahjong/riichi_mahjong_4p_engine.go
// and turn_manager.go's phase structuring, but the actual legality and
// scoring logic (canHu/canChi/findChiCombinations in checker.go and
// opt_selector.go) is stubbed in the source, so this package computes it
// fresh from the hand/shanten/decompose/yaku packages rather than
// carrying the stubs forward. The teacher's goroutine-per-seat
// PlayerTicker is dropped in favor of a synchronous API: spec 5 puts
// pacing/timeouts in an outer scheduler, not in the rule-engine core
// (see DESIGN.md).
package round

import (
	"fmt"

	"riichi/decompose"
	"riichi/discard"
	"riichi/hand"
	"riichi/internal/log"
	"riichi/rules"
	"riichi/shanten"
	"riichi/tile"
	"riichi/wall"
	"riichi/yaku"
)

// State names spec 4.9's own state machine diagram.
type State int

const (
	Kaiju State = iota
	Qipai
	Zimo
	Dapai
	Fulou
	Gang
	Gangzimo
	Hule
	Pingju
	Last
	Jieju
)

func (s State) String() string {
	switch s {
	case Kaiju:
		return "kaiju"
	case Qipai:
		return "qipai"
	case Zimo:
		return "zimo"
	case Dapai:
		return "dapai"
	case Fulou:
		return "fulou"
	case Gang:
		return "gang"
	case Gangzimo:
		return "gangzimo"
	case Hule:
		return "hule"
	case Pingju:
		return "pingju"
	case Last:
		return "last"
	case Jieju:
		return "jieju"
	default:
		return "unknown"
	}
}

// discardRecord remembers the most recent discard for claim resolution
// and chankan/furiten bookkeeping.
type discardRecord struct {
	Seat      int
	Tile      tile.Tile
	FromKakan bool // chankan eligibility: this "discard" is really a kakan addition
}

// Round is one hand: four seats' concealed state plus the wall and
// shared scoring context. The caller (an outer scheduler, per spec 5)
// drives it through Draw/Discard/DeclareX/ResolveClaims calls; Round
// never spawns goroutines or blocks on I/O itself.
type Round struct {
	Rules rules.RuleSet
	Wall  *wall.Wall

	Hands    [4]*hand.Hand
	Discards [4]*discard.Pile

	searcher *shanten.Searcher

	RoundWind int8 // tile.Tile.Num for z1..z4 (E/S/W/N)
	Dealer    int
	Honba     int
	RiichiSticks int

	State       State
	CurrentSeat int

	RiichiLevel   [4]int  // 0 none, 1 riichi, 2 double riichi
	Ippatsu       [4]bool
	Temporary     [4]bool // temporary furiten: missed a ron this go-around
	FirstGoAround bool

	kanCount  [4]int
	totalKans int

	deferredKanDora bool // a kan happened, kan_dora_delayed postpones its reveal

	last *discardRecord

	suuchaPendingSeat int // seat whose discard completed the 4th riichi, -1 if none pending

	anyCallEver bool // for suufonrenda: "no calls occurred"
	firstWindDiscard *tile.Tile // value of the very first discard, if a wind

	Result *Outcome
}

// Outcome is the terminal result of a hand: either a win (Hule) or a
// draw (Pingju), feeding Last's payout step.
type Outcome struct {
	Kind      OutcomeKind
	Wins      []SeatWin // one per simultaneous winner (usually one)
	DrawKind  DrawKind
	TenpaiSeats []int
	NagashiSeats []int
	PointDeltas [4]int // net point change per seat for draw outcomes (noten penalty, nagashi mangan); left zero for wins, whose payments are in Wins
	DealerContinues bool
}

type OutcomeKind int

const (
	OutcomeWin OutcomeKind = iota
	OutcomeDraw
)

type DrawKind int

const (
	DrawNone DrawKind = iota
	DrawRyuukyoku
	DrawSuufonRenda
	DrawSuuchaRiichi
	DrawSuuKaikan
	DrawSanchahou
	DrawKyuushu
	DrawNagashiMangan
)

// SeatWin is one winner's scoring result.
type SeatWin struct {
	Seat    int
	ByRon   bool
	LoserSeat int // valid iff ByRon
	Win     yaku.Win
	Payments yaku.Payments
	StickBonus int // riichi-stick pool collected (1000 per stick), 0 for every seat but the pool's recipient
}

// seatWind returns the round-wind-relative seat wind (1=E..4=N) for
// seat, per the dealer's rotation.
func seatWind(dealer, seat int) int8 {
	return int8((seat-dealer+4)%4) + 1
}

// NewRound builds a fresh hand: four 13-tile concealed deals plus a
// shared wall, at state Qipai (spec 4.9's post-deal, pre-auto-draw
// state; the dealer's auto zimo happens in Start).
func NewRound(rs rules.RuleSet, w *wall.Wall, concealed [4][]tile.Tile, roundWind int8, dealer int) (*Round, error) {
	r := &Round{
		Rules:             rs,
		Wall:              w,
		RoundWind:         roundWind,
		Dealer:            dealer,
		searcher:          shanten.NewSearcher(),
		State:             Qipai,
		FirstGoAround:     true,
		suuchaPendingSeat: -1,
	}
	for s := 0; s < 4; s++ {
		h, err := hand.FromTiles(concealed[s])
		if err != nil {
			return nil, fmt.Errorf("round: seat %d deal: %w", s, err)
		}
		if h.TileCount() != 13 {
			return nil, fmt.Errorf("round: seat %d dealt %d tiles, want 13", s, h.TileCount())
		}
		r.Hands[s] = h
		r.Discards[s] = discard.New()
	}
	log.Info("round dealt: round_wind=%d dealer=%d honba=%d", roundWind, dealer, r.Honba)
	return r, nil
}

// Start performs the dealer's auto zimo (spec 4.9: Qipai --auto--> Zimo).
func (r *Round) Start() error {
	if r.State != Qipai {
		return fmt.Errorf("round: Start from state %s, want qipai", r.State)
	}
	return r.drawFor(r.Dealer)
}

// drawFor draws the next live tile for seat and enters Zimo.
func (r *Round) drawFor(seat int) error {
	t, err := r.Wall.Draw()
	if err != nil {
		log.Warn("seat %d draw failed: %v", seat, err)
		return fmt.Errorf("round: draw: %w", err)
	}
	if err := r.Hands[seat].Draw(t); err != nil {
		return fmt.Errorf("round: seat %d draw: %w", seat, err)
	}
	r.Temporary[seat] = false
	r.State = Zimo
	r.CurrentSeat = seat
	log.Debug("seat %d drew %s, %d live tiles left", seat, t, r.Wall.LiveCount())
	return nil
}

// hand34 returns seat's concealed tiles as a shanten-ready 34-count
// array, the common input every legality/shanten/decomposition check
// below needs.
func (r *Round) hand34(seat int) shanten.Hand34 {
	return shanten.FromConcealed(r.Hands[seat].ConcealedTiles())
}

// fixedMelds is how many meld slots seat's called melds occupy — one
// per meld regardless of chi/pon/kan, per spec 4.5.
func (r *Round) fixedMelds(seat int) int {
	return len(r.Hands[seat].Melds())
}
