package game

// LinkKind says what the secondary edit of a move does.
type LinkKind uint8

const (
	NoLink   LinkKind = iota
	Relocate          // castling: move the rook from Source to Target
	Remove            // en passant: clear Source, Target is unused
)

// Link is a second board edit applied together with its move.
type Link struct {
	Kind   LinkKind
	Source Position
	Target Position
}

// Move is a source and target square plus an optional linked edit.
//
// The ordering key is computed against the board the move was generated on, so a Move
// should not be reused on a different position for ordering purposes.
type Move struct {
	Source Position
	Target Position
	Link   Link

	key int
}

// Equal reports whether both moves go from the same square to the same square.
func (m Move) Equal(o Move) bool {
	return m.Source == o.Source && m.Target == o.Target
}

// OrderKey is the move-ordering estimate. Lower keys are tried first.
func (m Move) OrderKey() int { return m.key }

// IsCastle reports whether the move relocates a rook.
func (m Move) IsCastle() bool { return m.Link.Kind == Relocate }

// IsEnPassant reports whether the move removes a pawn from a square other than its target.
func (m Move) IsEnPassant() bool { return m.Link.Kind == Remove }

// String returns the move in coordinate notation ("e2e4").
func (m Move) String() string {
	return m.Source.String() + m.Target.String()
}
