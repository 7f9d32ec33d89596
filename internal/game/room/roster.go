package room

import "slices"

// ConnID identifies one transport connection.
type ConnID string

type Member struct {
	ID   ConnID `json:"id"`
	Name string `json:"name"`
}

// Roster is the ordered set of guessers in a room, unique by connection.
type Roster struct {
	members []Member
}

func NewRoster() *Roster {
	return &Roster{members: make([]Member, 0, 8)}
}

// Join appends the member unless the connection is already present.
// It reports whether the roster changed.
func (ro *Roster) Join(id ConnID, name string) bool {
	if ro.Contains(id) {
		return false
	}
	ro.members = append(ro.members, Member{ID: id, Name: name})
	return true
}

// Remove deletes the member with the given connection and returns it.
func (ro *Roster) Remove(id ConnID) (Member, bool) {
	i := ro.index(id)
	if i < 0 {
		return Member{}, false
	}
	m := ro.members[i]
	ro.members = slices.Delete(ro.members, i, i+1)
	return m, true
}

func (ro *Roster) Lookup(id ConnID) (Member, bool) {
	i := ro.index(id)
	if i < 0 {
		return Member{}, false
	}
	return ro.members[i], true
}

func (ro *Roster) Contains(id ConnID) bool {
	return ro.index(id) >= 0
}

// Members returns a copy in arrival order.
func (ro *Roster) Members() []Member {
	return slices.Clone(ro.members)
}

func (ro *Roster) Len() int {
	return len(ro.members)
}

func (ro *Roster) index(id ConnID) int {
	return slices.IndexFunc(ro.members, func(m Member) bool { return m.ID == id })
}
