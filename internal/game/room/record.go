package room

type RecordType string

const (
	RecordQuestion RecordType = "q"
	RecordAnswer   RecordType = "a"
	RecordHint     RecordType = "hint"
	RecordChat     RecordType = "chat"
	RecordSystem   RecordType = "system"
)

type AnswerKind string

const (
	AnswerYes     AnswerKind = "yes"
	AnswerNo      AnswerKind = "no"
	AnswerIDK     AnswerKind = "idk"
	AnswerCorrect AnswerKind = "correct"
)

func (k AnswerKind) Valid() bool {
	switch k {
	case AnswerYes, AnswerNo, AnswerIDK, AnswerCorrect:
		return true
	}
	return false
}

// Record is one transcript entry. It is sent to clients as is, so a late
// joiner can rebuild the whole conversation from the transcript alone.
type Record struct {
	Type       RecordType `json:"type"`
	ID         int        `json:"id,omitempty"`
	QuestionID int        `json:"qid,omitempty"`
	From       string     `json:"from,omitempty"`
	Text       string     `json:"text,omitempty"`
	Kind       AnswerKind `json:"kind,omitempty"`
	Auto       bool       `json:"auto,omitempty"`
}
