package wander

// Turn is a sealed interface representing one entry in a conversation
// timeline. The unexported marker method prevents external implementations.
// Role() returns the turn's role without requiring a type switch.
//
// Turns are appended, never mutated or reordered. Insertion order is the
// display order: it is the conversation.
type Turn interface {
	isTurn()
	Role() Role
}

// TextTurn is a plain text turn from either side of the conversation.
type TextTurn struct {
	Sender Role
	Text   string
}

func (TextTurn) isTurn() {}

// Role returns the sender's role.
func (t TextTurn) Role() Role { return t.Sender }

// PlaceTurn is a structured place recommendation. Place turns are only ever
// produced by the assistant.
type PlaceTurn struct {
	Place Place
}

func (PlaceTurn) isTurn() {}

// Role returns RoleAssistant.
func (PlaceTurn) Role() Role { return RoleAssistant }

// Place is a single recommended location.
type Place struct {
	ID      string
	Name    string
	Address string
	Rating  *float64 // nil when the backend has no rating
	Lat     float64
	Lng     float64
}

// Reply is the payload of a successful query: one message plus zero or more
// place recommendations, in backend order.
type Reply struct {
	Message string
	Places  []Place
}

// Turns expands a reply into its timeline representation: one assistant text
// turn followed by one place turn per recommendation.
func (r Reply) Turns() []Turn {
	turns := make([]Turn, 0, 1+len(r.Places))
	turns = append(turns, TextTurn{Sender: RoleAssistant, Text: r.Message})
	for _, p := range r.Places {
		turns = append(turns, PlaceTurn{Place: p})
	}
	return turns
}

// Interface compliance checks.
var (
	_ Turn = TextTurn{}
	_ Turn = PlaceTurn{}
)
