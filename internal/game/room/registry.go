package room

import (
	"fmt"
	"slices"
	"strings"
)

// Registry maps room codes to live rooms. Like Room it is owned by one
// goroutine; callers serialize access.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create registers a new room and returns the notifications that seat its host.
func (reg *Registry) Create(code string, host ConnID, hostName, word string) (*Room, []Notification, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil, fmt.Errorf("room code: %w", ErrMissingField)
	}
	if _, exists := reg.rooms[code]; exists {
		return nil, nil, fmt.Errorf("room %q: %w", code, ErrDuplicateRoom)
	}

	r, err := New(code, host, hostName, word)
	if err != nil {
		return nil, nil, err
	}
	reg.rooms[code] = r
	return r, r.Opened(), nil
}

func (reg *Registry) Get(code string) (*Room, error) {
	r, ok := reg.rooms[strings.TrimSpace(code)]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, ErrNotFound)
	}
	return r, nil
}

// Destroy drops the room; its code can be reused right away.
func (reg *Registry) Destroy(code string) {
	delete(reg.rooms, strings.TrimSpace(code))
}

// Dispatch applies cmd to the room registered under code. When the command
// finishes the room, it is destroyed and a disband directive closes the list.
func (reg *Registry) Dispatch(code string, caller ConnID, cmd Command) ([]Notification, error) {
	r, err := reg.Get(code)
	if err != nil {
		return nil, err
	}

	notes, err := r.Apply(caller, cmd)
	if err != nil {
		return nil, fmt.Errorf("room %q: %w", r.Code(), err)
	}

	if r.Finished() {
		reg.Destroy(r.Code())
		notes = append(notes, Notification{Kind: KindDisband, Room: r.Code()})
	}
	return notes, nil
}

func (reg *Registry) Len() int {
	return len(reg.rooms)
}

// Codes lists the live room codes in sorted order.
func (reg *Registry) Codes() []string {
	codes := make([]string, 0, len(reg.rooms))
	for code := range reg.rooms {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
