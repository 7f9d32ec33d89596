package room

// Kind names an outbound event. Values double as wire message types; the
// attach/detach/disband directives only steer room membership in the transport.
type Kind string

const (
	KindRoomJoined     Kind = "roomJoined"
	KindPlayersUpdate  Kind = "playersUpdate"
	KindChatUpdate     Kind = "chatUpdate"
	KindNewQuestion    Kind = "newQuestion"
	KindNewAnswer      Kind = "newAnswer"
	KindNewHint        Kind = "newHint"
	KindNewChatMessage Kind = "newChatMessage"
	KindGameOver       Kind = "gameOver"
	KindRoomClosed     Kind = "roomClosed"
	KindKicked         Kind = "kicked"
	KindEffect         Kind = "effect"

	KindAttach  Kind = "attach"
	KindDetach  Kind = "detach"
	KindDisband Kind = "disband"
)

// Notification is one addressed output of a transition. An empty To means
// every connection attached to Room.
type Notification struct {
	Kind    Kind
	Room    string
	To      ConnID
	Payload any
}

func (n Notification) Broadcast() bool {
	return n.To == ""
}

// Directive reports whether n changes group membership instead of carrying data.
func (n Notification) Directive() bool {
	switch n.Kind {
	case KindAttach, KindDetach, KindDisband:
		return true
	}
	return false
}

// Status is the counter block attached to most room events.
type Status struct {
	QuestionCount        int    `json:"questionCount"`
	WaitingForAnswer     *int   `json:"waitingForAnswer"`
	WordLocked           bool   `json:"wordLocked"`
	GameOver             bool   `json:"gameOver"`
	GameResultForHost    string `json:"gameResultForHost,omitempty"`
	GameResultForGuesser string `json:"gameResultForGuesser,omitempty"`
	FinalWord            string `json:"finalWord,omitempty"`
}

type RoomJoinedPayload struct {
	Role     string `json:"role"`
	RoomCode string `json:"roomCode"`
	Word     string `json:"word,omitempty"`
	Status
}

type PlayersPayload struct {
	RoomCode string   `json:"roomCode"`
	Host     Member   `json:"host"`
	Players  []Member `json:"players"`
}

type ChatUpdatePayload struct {
	Items []Record `json:"items"`
	Status
}

// EventPayload carries a question or an answer together with fresh counters.
type EventPayload struct {
	Record
	Status
}

type GameOverPayload struct {
	GameResultForHost    string `json:"gameResultForHost"`
	GameResultForGuesser string `json:"gameResultForGuesser"`
	FinalWord            string `json:"finalWord"`
}

type RoomClosedPayload struct {
	RoomCode string `json:"roomCode"`
	Reason   string `json:"reason"`
}

type KickedPayload struct {
	RoomCode string `json:"roomCode"`
}

type EffectPayload struct {
	Effect string `json:"effect"`
	From   string `json:"from"`
}
