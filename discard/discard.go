// Package discard implements C3: an ordered discard pile with preserved
// tsumogiri/riichi/called-from markers and an O(1) furiten lookup.
package discard

import (
	"fmt"

	"riichi/tile"
)

// Pile is one seat's discard row.
type Pile struct {
	entries []tile.DiscardToken
	seen    map[int]bool // normalized tile.Key() -> ever discarded
}

// New returns an empty pile.
func New() *Pile {
	return &Pile{seen: make(map[int]bool)}
}

// Clone returns an independent deep copy.
func (p *Pile) Clone() *Pile {
	c := &Pile{
		entries: append([]tile.DiscardToken(nil), p.entries...),
		seen:    make(map[int]bool, len(p.seen)),
	}
	for k, v := range p.seen {
		c.seen[k] = v
	}
	return c
}

// Discard appends t (direction-flag stripped before storing, per spec
// 4.3 — a freshly discarded tile carries no call-origin marker yet) and
// updates the furiten set.
func (p *Pile) Discard(t tile.DiscardToken) error {
	if !t.Tile.Valid() || t.Tile.IsHidden() {
		return fmt.Errorf("discard: invalid tile %q", t.Tile)
	}
	t.Dir = tile.DirNone
	p.entries = append(p.entries, t)
	p.seen[normalizedKey(t.Tile)] = true
	return nil
}

// MarkCalled attaches dir to the most recent discard, recording which
// seat claimed it.
func (p *Pile) MarkCalled(dir byte) error {
	if len(p.entries) == 0 {
		return fmt.Errorf("discard: no discard to mark called")
	}
	if dir != tile.DirShimocha && dir != tile.DirToimen && dir != tile.DirKamicha {
		return fmt.Errorf("discard: invalid call direction %q", dir)
	}
	p.entries[len(p.entries)-1].Dir = dir
	return nil
}

// Contains reports whether t (by normalized suit/number) has ever been
// discarded here — the furiten test.
func (p *Pile) Contains(t tile.Tile) bool {
	return p.seen[normalizedKey(t)]
}

// Entries returns the discard row in order.
func (p *Pile) Entries() []tile.DiscardToken {
	return append([]tile.DiscardToken(nil), p.entries...)
}

// Len returns the number of discards.
func (p *Pile) Len() int { return len(p.entries) }

// Last returns the most recent discard and true, or the zero value and
// false if the pile is empty.
func (p *Pile) Last() (tile.DiscardToken, bool) {
	if len(p.entries) == 0 {
		return tile.DiscardToken{}, false
	}
	return p.entries[len(p.entries)-1], true
}

func normalizedKey(t tile.Tile) int {
	return tile.Tile{Suit: t.Suit, Num: t.Normalized()}.Key()
}
