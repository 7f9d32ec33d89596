package room

// Command is an inbound request against one room.
type Command interface {
	command()
}

type Join struct {
	Nickname string
}

type AskQuestion struct {
	Text     string
	Nickname string
}

type AnswerQuestion struct {
	QuestionID int
	Kind       AnswerKind
}

type SendHint struct {
	Text string
}

type SendChat struct {
	Text     string
	Nickname string
}

type Kick struct {
	Target ConnID
}

// Leave is issued for an explicit leaveRoom and for connection loss.
type Leave struct{}

func (Join) command()           {}
func (AskQuestion) command()    {}
func (AnswerQuestion) command() {}
func (SendHint) command()       {}
func (SendChat) command()       {}
func (Kick) command()           {}
func (Leave) command()          {}
