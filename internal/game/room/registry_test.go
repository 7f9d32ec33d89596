package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry()

	r, notes, err := reg.Create("4242", hostConn, "Host", "사과")
	require.NoError(t, err)
	assert.Equal(t, "4242", r.Code())
	assert.Equal(t, []Kind{KindAttach, KindRoomJoined, KindPlayersUpdate}, kindsOf(notes))

	got, err := reg.Get("4242")
	require.NoError(t, err)
	assert.Same(t, r, got)
	assert.Equal(t, []string{"4242"}, reg.Codes())
}

func TestRegistry_CreateRejected(t *testing.T) {
	testCases := []struct {
		desc     string
		code     string
		name     string
		word     string
		expected error
	}{
		{desc: "duplicate code", code: "4242", name: "Other", word: "배", expected: ErrDuplicateRoom},
		{desc: "duplicate code with padding", code: " 4242 ", name: "Other", word: "배", expected: ErrDuplicateRoom},
		{desc: "missing code", code: "", name: "Other", word: "배", expected: ErrMissingField},
		{desc: "missing nickname", code: "1", name: " ", word: "배", expected: ErrMissingField},
		{desc: "missing word", code: "1", name: "Other", word: "", expected: ErrMissingField},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			reg := NewRegistry()
			_, _, err := reg.Create("4242", hostConn, "Host", "사과")
			require.NoError(t, err)

			r, notes, err := reg.Create(tc.code, g1Conn, tc.name, tc.word)

			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, r)
			assert.Empty(t, notes)
			assert.Equal(t, 1, reg.Len())
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Dispatch("nope", g1Conn, Join{Nickname: "G1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_DispatchKeepsLiveRoom(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Create("4242", hostConn, "Host", "사과")
	require.NoError(t, err)

	notes, err := reg.Dispatch("4242", g1Conn, Join{Nickname: "G1"})
	require.NoError(t, err)
	assert.NotContains(t, kindsOf(notes), KindDisband)

	_, err = reg.Dispatch("4242", hostConn, AskQuestion{Text: "host asks"})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, 1, reg.Len())
}

// A decided game removes the room, so the code is free again.
func TestScenarioB_CorrectAnswerDestroysRoom(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Create("4242", hostConn, "Host", "사과")
	require.NoError(t, err)
	_, err = reg.Dispatch("4242", g1Conn, Join{Nickname: "G1"})
	require.NoError(t, err)
	_, err = reg.Dispatch("4242", g1Conn, AskQuestion{Text: "사과인가요?"})
	require.NoError(t, err)

	notes, err := reg.Dispatch("4242", hostConn, AnswerQuestion{QuestionID: 1, Kind: AnswerCorrect})
	require.NoError(t, err)

	assert.Equal(t, []Kind{KindNewAnswer, KindGameOver, KindDisband}, kindsOf(notes))
	over := notes[1].Payload.(GameOverPayload)
	assert.Equal(t, "guesserWin", over.GameResultForGuesser)
	assert.Equal(t, "hostLose", over.GameResultForHost)
	assert.Equal(t, "사과", over.FinalWord)

	_, err = reg.Get("4242")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, reg.Len())

	_, _, err = reg.Create("4242", g2Conn, "New host", "바나나")
	assert.NoError(t, err)
}

func TestScenarioD_KickAbsentPlayer(t *testing.T) {
	reg := NewRegistry()
	r, _, err := reg.Create("4242", hostConn, "Host", "사과")
	require.NoError(t, err)
	_, err = reg.Dispatch("4242", g1Conn, Join{Nickname: "G1"})
	require.NoError(t, err)
	_, err = reg.Dispatch("4242", g1Conn, Leave{})
	require.NoError(t, err)
	transcript := r.Transcript()

	notes, err := reg.Dispatch("4242", hostConn, Kick{Target: g1Conn})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, notes)
	assert.Equal(t, transcript, r.Transcript())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_HostLeaveDisbands(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Create("4242", hostConn, "Host", "사과")
	require.NoError(t, err)

	notes, err := reg.Dispatch("4242", hostConn, Leave{})
	require.NoError(t, err)

	assert.Equal(t, []Kind{KindRoomClosed, KindDisband}, kindsOf(notes))
	assert.Equal(t, "4242", notes[1].Room)
	assert.Empty(t, reg.Codes())
}

func TestRegistry_Codes(t *testing.T) {
	reg := NewRegistry()
	for _, code := range []string{"b", "c", "a"} {
		_, _, err := reg.Create(code, ConnID("host-"+code), "Host", "사과")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "b", "c"}, reg.Codes())

	reg.Destroy("b")
	assert.Equal(t, []string{"a", "c"}, reg.Codes())
}
