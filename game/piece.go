package game

import "strings"

// Kind is the variant of a piece. The zero value means "no piece".
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindValues = [...]int{
	NoKind: 0,
	Pawn:   100,
	Knight: 320,
	Bishop: 325,
	Rook:   500,
	Queen:  975,
	King:   400000,
}

// Value is the material value of the kind.
func (k Kind) Value() int {
	if int(k) >= len(kindValues) {
		return 0
	}
	return kindValues[k]
}

// TableID is the index of the kind in the positional tables and in saved games.
func (k Kind) TableID() int {
	switch k {
	case Bishop:
		return 0
	case King:
		return 1
	case Knight:
		return 2
	case Pawn:
		return 3
	case Queen:
		return 4
	case Rook:
		return 5
	}
	return -1
}

// KindFromTableID is the inverse of TableID.
func KindFromTableID(id int) (Kind, bool) {
	switch id {
	case 0:
		return Bishop, true
	case 1:
		return King, true
	case 2:
		return Knight, true
	case 3:
		return Pawn, true
	case 4:
		return Queen, true
	case 5:
		return Rook, true
	}
	return NoKind, false
}

const kindLetters = " pnbrqk"

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece is a kind and a color. The zero value is the empty square.
type Piece struct {
	Kind  Kind
	Color Color
}

// NoPiece is the empty square.
var NoPiece Piece

// IsEmpty reports whether p represents an empty square.
func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

// Value is the material value of the piece.
func (p Piece) Value() int { return p.Kind.Value() }

// String returns the FEN letter of the piece, upper case for white.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	l := string(kindLetters[p.Kind])
	if p.Color == White {
		return strings.ToUpper(l)
	}
	return l
}

// Upgrades is the kind each side promotes its pawns to, indexed by Color.
type Upgrades [2]Kind

// DefaultUpgrades promotes both sides to queens.
var DefaultUpgrades = Upgrades{Queen, Queen}

// For returns the promotion kind for c, falling back to Queen for kinds a pawn cannot become.
func (u Upgrades) For(c Color) Kind {
	if k := u[c]; canPromoteTo(k) {
		return k
	}
	return Queen
}

func canPromoteTo(k Kind) bool {
	return k == Knight || k == Bishop || k == Rook || k == Queen
}
