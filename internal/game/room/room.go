package room

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"twentyq/internal/game/chosung"
)

const (
	QuestionBudget = 20
	LengthHintAt   = 10
	InitialsHintAt = 15

	DefaultHostName    = "출제자"
	DefaultGuesserName = "참가자"

	RoleHost    = "host"
	RoleGuesser = "guesser"
)

// hintEffect turns a host hint into a pure visual effect.
const hintEffect = "/fireworks"

// chatEffects maps reserved chat literals to the effect they trigger.
var chatEffects = map[string]string{
	"/fireworks": "fireworks",
	"/confetti":  "confetti",
	"/shake":     "shake",
	"ㅋㅋㅋ":        "laugh",
}

// Room is the authoritative state of one game. It is owned by a single goroutine
// and holds no locks; every mutation goes through Apply.
type Room struct {
	code           string
	host           Member
	word           string
	roster         *Roster
	transcript     []Record
	lastQuestionID int
	questionCount  int
	state          State
	closed         bool
}

// New builds a room that already has its secret word, so it starts in AwaitingQuestion.
func New(code string, host ConnID, hostName, word string) (*Room, error) {
	code = strings.TrimSpace(code)
	hostName = strings.TrimSpace(hostName)
	word = strings.TrimSpace(word)

	switch {
	case code == "":
		return nil, fmt.Errorf("room code: %w", ErrMissingField)
	case hostName == "":
		return nil, fmt.Errorf("nickname: %w", ErrMissingField)
	case word == "":
		return nil, fmt.Errorf("word: %w", ErrMissingField)
	case host == "":
		return nil, fmt.Errorf("host connection: %w", ErrMissingField)
	}

	return &Room{
		code:       code,
		host:       Member{ID: host, Name: hostName},
		word:       word,
		roster:     NewRoster(),
		transcript: make([]Record, 0, 64),
		state:      AwaitingQuestion{},
	}, nil
}

func (r *Room) Code() string      { return r.code }
func (r *Room) Host() Member      { return r.host }
func (r *Room) Word() string      { return r.word }
func (r *Room) State() State      { return r.state }
func (r *Room) QuestionCount() int { return r.questionCount }
func (r *Room) Members() []Member { return r.roster.Members() }

// WordLocked is always true: the word is part of room creation.
func (r *Room) WordLocked() bool { return r.word != "" }

func (r *Room) PendingQuestion() (int, bool) {
	if s, ok := r.state.(AwaitingAnswer); ok {
		return s.QuestionID, true
	}
	return 0, false
}

func (r *Room) GameOver() bool {
	_, ok := r.state.(Terminal)
	return ok
}

func (r *Room) Outcome() Outcome {
	if s, ok := r.state.(Terminal); ok {
		return s.Outcome
	}
	return OutcomeNone
}

// WordRevealed mirrors GameOver: the word only leaves the host once the game is decided.
func (r *Room) WordRevealed() bool { return r.GameOver() }

// Finished reports whether the room must be removed from the registry.
func (r *Room) Finished() bool { return r.closed || r.GameOver() }

func (r *Room) IsHost(id ConnID) bool { return id == r.host.ID }

// Transcript returns a copy of the recorded messages.
func (r *Room) Transcript() []Record { return slices.Clone(r.transcript) }

func (r *Room) Status() Status {
	st := Status{
		QuestionCount: r.questionCount,
		WordLocked:    r.WordLocked(),
		GameOver:      r.GameOver(),
	}
	if id, ok := r.PendingQuestion(); ok {
		st.WaitingForAnswer = &id
	}
	if t, ok := r.state.(Terminal); ok {
		st.GameResultForHost = t.Outcome.ForHost()
		st.GameResultForGuesser = t.Outcome.ForGuesser()
		st.FinalWord = r.word
	}
	return st
}

// Apply validates cmd against the current state and performs the transition.
// A rejected command returns an error, leaves the room untouched and yields no notifications.
func (r *Room) Apply(caller ConnID, cmd Command) ([]Notification, error) {
	switch c := cmd.(type) {
	case Join:
		return r.join(caller, c), nil
	case AskQuestion:
		return r.askQuestion(caller, c)
	case AnswerQuestion:
		return r.answerQuestion(caller, c)
	case SendHint:
		return r.sendHint(caller, c)
	case SendChat:
		return r.sendChat(caller, c)
	case Kick:
		return r.kick(caller, c)
	case Leave:
		return r.leave(caller)
	}
	return nil, fmt.Errorf("%T: %w", cmd, ErrInvalidCommand)
}

// Opened returns the notifications for the host right after creation.
func (r *Room) Opened() []Notification {
	return []Notification{
		r.to(r.host.ID, KindAttach, nil),
		r.to(r.host.ID, KindRoomJoined, r.joinedView(r.host.ID)),
		r.all(KindPlayersUpdate, r.players()),
	}
}

func (r *Room) join(caller ConnID, c Join) []Notification {
	if !r.IsHost(caller) {
		name := strings.TrimSpace(c.Nickname)
		if name == "" {
			name = DefaultGuesserName
		}
		if r.roster.Join(caller, name) {
			r.record(Record{Type: RecordSystem, Text: fmt.Sprintf("%s님이 입장했습니다.", name)})
		}
	}

	return []Notification{
		r.to(caller, KindAttach, nil),
		r.to(caller, KindRoomJoined, r.joinedView(caller)),
		r.all(KindPlayersUpdate, r.players()),
		r.all(KindChatUpdate, ChatUpdatePayload{Items: r.Transcript(), Status: r.Status()}),
	}
}

func (r *Room) askQuestion(caller ConnID, c AskQuestion) ([]Notification, error) {
	text := strings.TrimSpace(c.Text)
	switch {
	case r.GameOver():
		return nil, fmt.Errorf("ask: game over: %w", ErrInvalidState)
	case text == "":
		return nil, fmt.Errorf("ask: empty text: %w", ErrInvalidCommand)
	case r.IsHost(caller):
		return nil, fmt.Errorf("ask: host cannot ask: %w", ErrNotAuthorized)
	case !r.WordLocked():
		return nil, fmt.Errorf("ask: word not set: %w", ErrInvalidState)
	}
	if id, pending := r.PendingQuestion(); pending {
		return nil, fmt.Errorf("ask: question %d still pending: %w", id, ErrInvalidState)
	}

	r.lastQuestionID++
	r.questionCount++
	r.state = AwaitingAnswer{QuestionID: r.lastQuestionID}

	q := r.record(Record{
		Type: RecordQuestion,
		ID:   r.lastQuestionID,
		From: r.guesserName(caller, c.Nickname),
		Text: text,
	})
	return []Notification{r.all(KindNewQuestion, EventPayload{Record: q, Status: r.Status()})}, nil
}

func (r *Room) answerQuestion(caller ConnID, c AnswerQuestion) ([]Notification, error) {
	if r.GameOver() {
		return nil, fmt.Errorf("answer: game over: %w", ErrInvalidState)
	}
	if !r.IsHost(caller) {
		return nil, fmt.Errorf("answer: %w", ErrNotAuthorized)
	}
	pending, ok := r.PendingQuestion()
	if !ok || pending != c.QuestionID {
		return nil, fmt.Errorf("answer: question %d is not pending: %w", c.QuestionID, ErrInvalidState)
	}
	if !c.Kind.Valid() {
		return nil, fmt.Errorf("answer: kind %q: %w", c.Kind, ErrInvalidCommand)
	}

	a := r.record(Record{
		Type:       RecordAnswer,
		QuestionID: c.QuestionID,
		From:       r.host.Name,
		Kind:       c.Kind,
	})

	switch {
	case c.Kind == AnswerCorrect:
		r.state = Terminal{Outcome: GuesserWin}
	case r.questionCount >= QuestionBudget:
		r.state = Terminal{Outcome: GuesserLose}
	default:
		r.state = AwaitingQuestion{}
	}

	notes := []Notification{r.all(KindNewAnswer, EventPayload{Record: a, Status: r.Status()})}
	if r.GameOver() {
		return append(notes, r.all(KindGameOver, r.gameOverView())), nil
	}
	return append(notes, r.autoHints()...), nil
}

// autoHints fires on the exact question count, so each hint is emitted at most once.
func (r *Room) autoHints() []Notification {
	var text string
	switch r.questionCount {
	case LengthHintAt:
		text = fmt.Sprintf("정답은 %d글자입니다.", utf8.RuneCountInString(r.word))
	case InitialsHintAt:
		text = fmt.Sprintf("초성 힌트: %s", chosung.Extract(r.word))
	default:
		return nil
	}
	h := r.record(Record{Type: RecordHint, From: r.host.Name, Text: text, Auto: true})
	return []Notification{r.all(KindNewHint, h)}
}

func (r *Room) sendHint(caller ConnID, c SendHint) ([]Notification, error) {
	text := strings.TrimSpace(c.Text)
	switch {
	case !r.IsHost(caller):
		return nil, fmt.Errorf("hint: %w", ErrNotAuthorized)
	case text == "":
		return nil, fmt.Errorf("hint: empty text: %w", ErrInvalidCommand)
	case text == hintEffect:
		return []Notification{r.all(KindEffect, EffectPayload{Effect: "fireworks", From: r.host.Name})}, nil
	case r.GameOver():
		return nil, fmt.Errorf("hint: game over: %w", ErrInvalidState)
	}

	h := r.record(Record{Type: RecordHint, From: r.host.Name, Text: text})
	return []Notification{r.all(KindNewHint, h)}, nil
}

func (r *Room) sendChat(caller ConnID, c SendChat) ([]Notification, error) {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return nil, fmt.Errorf("chat: empty text: %w", ErrInvalidCommand)
	}

	var from string
	if r.IsHost(caller) {
		from = r.host.Name
	} else if m, ok := r.roster.Lookup(caller); ok {
		from = m.Name
	} else {
		return nil, fmt.Errorf("chat: %s is not in room %s: %w", caller, r.code, ErrNotAuthorized)
	}

	if effect, ok := chatEffects[text]; ok {
		return []Notification{r.all(KindEffect, EffectPayload{Effect: effect, From: from})}, nil
	}

	msg := r.record(Record{Type: RecordChat, From: from, Text: text})
	return []Notification{r.all(KindNewChatMessage, msg)}, nil
}

func (r *Room) kick(caller ConnID, c Kick) ([]Notification, error) {
	switch {
	case !r.IsHost(caller):
		return nil, fmt.Errorf("kick: %w", ErrNotAuthorized)
	case r.IsHost(c.Target):
		return nil, fmt.Errorf("kick: %w", ErrCannotKickHost)
	}
	m, ok := r.roster.Remove(c.Target)
	if !ok {
		return nil, fmt.Errorf("kick: player %s: %w", c.Target, ErrNotFound)
	}

	sys := r.record(Record{Type: RecordSystem, Text: fmt.Sprintf("%s님이 강퇴되었습니다.", m.Name)})
	return []Notification{
		r.to(m.ID, KindDetach, nil),
		r.to(m.ID, KindKicked, KickedPayload{RoomCode: r.code}),
		r.all(KindPlayersUpdate, r.players()),
		r.all(KindNewChatMessage, sys),
	}, nil
}

func (r *Room) leave(caller ConnID) ([]Notification, error) {
	if r.IsHost(caller) {
		r.closed = true
		return []Notification{
			r.all(KindRoomClosed, RoomClosedPayload{RoomCode: r.code, Reason: "hostLeft"}),
		}, nil
	}

	m, ok := r.roster.Remove(caller)
	if !ok {
		return nil, fmt.Errorf("leave: %s: %w", caller, ErrNotFound)
	}
	sys := r.record(Record{Type: RecordSystem, Text: fmt.Sprintf("%s님이 나갔습니다.", m.Name)})
	return []Notification{
		r.to(m.ID, KindDetach, nil),
		r.all(KindPlayersUpdate, r.players()),
		r.all(KindNewChatMessage, sys),
	}, nil
}

func (r *Room) record(rec Record) Record {
	r.transcript = append(r.transcript, rec)
	return rec
}

// guesserName prefers the roster, then the name the client sent along.
func (r *Room) guesserName(id ConnID, nickname string) string {
	if m, ok := r.roster.Lookup(id); ok {
		return m.Name
	}
	if n := strings.TrimSpace(nickname); n != "" {
		return n
	}
	return DefaultGuesserName
}

func (r *Room) joinedView(id ConnID) RoomJoinedPayload {
	view := RoomJoinedPayload{
		Role:     RoleGuesser,
		RoomCode: r.code,
		Status:   r.Status(),
	}
	if r.IsHost(id) {
		view.Role = RoleHost
		view.Word = r.word
	}
	return view
}

func (r *Room) gameOverView() GameOverPayload {
	o := r.Outcome()
	return GameOverPayload{
		GameResultForHost:    o.ForHost(),
		GameResultForGuesser: o.ForGuesser(),
		FinalWord:            r.word,
	}
}

func (r *Room) players() PlayersPayload {
	return PlayersPayload{RoomCode: r.code, Host: r.host, Players: r.roster.Members()}
}

func (r *Room) all(kind Kind, payload any) Notification {
	return Notification{Kind: kind, Room: r.code, Payload: payload}
}

func (r *Room) to(id ConnID, kind Kind, payload any) Notification {
	return Notification{Kind: kind, Room: r.code, To: id, Payload: payload}
}
