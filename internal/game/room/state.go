package room

// State is the phase of a room. Exactly one of AwaitingQuestion, AwaitingAnswer
// or Terminal; pending question, game over and outcome all derive from it.
type State interface {
	isState()
}

// AwaitingQuestion: the word is locked and no question is outstanding.
type AwaitingQuestion struct{}

// AwaitingAnswer holds the single question the host still has to answer.
type AwaitingAnswer struct {
	QuestionID int
}

// Terminal is final. The registry destroys a room as soon as it gets here.
type Terminal struct {
	Outcome Outcome
}

func (AwaitingQuestion) isState() {}
func (AwaitingAnswer) isState()   {}
func (Terminal) isState()         {}

type Outcome int

const (
	OutcomeNone Outcome = iota
	GuesserWin
	GuesserLose
)

// ForGuesser is the wire value of the outcome seen by guessers.
func (o Outcome) ForGuesser() string {
	switch o {
	case GuesserWin:
		return "guesserWin"
	case GuesserLose:
		return "guesserLose"
	}
	return ""
}

// ForHost is the mirrored value seen by the host.
func (o Outcome) ForHost() string {
	switch o {
	case GuesserWin:
		return "hostLose"
	case GuesserLose:
		return "hostWin"
	}
	return ""
}

func (o Outcome) String() string {
	if s := o.ForGuesser(); s != "" {
		return s
	}
	return "none"
}
