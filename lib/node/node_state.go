package node

import (
	"fmt"
)

type State uint

const (
	StateNONE State = iota
	StateBOOTING
	StateRUNNING
	StateTERMINATING
)

func (s State) String() string {
	switch s {
	case StateNONE:
		return "NONE"
	case StateBOOTING:
		return "BOOTING"
	case StateRUNNING:
		return "RUNNING"
	case StateTERMINATING:
		return "TERMINATING"
	}

	return ""
}

func (s State) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", s.String())), nil
}

func (s *State) UnmarshalJSON(b []byte) (err error) {
	var c State
	switch string(b[1 : len(b)-1]) {
	case "NONE":
		c = StateNONE
	case "BOOTING":
		c = StateBOOTING
	case "RUNNING":
		c = StateRUNNING
	case "TERMINATING":
		c = StateTERMINATING
	}

	*s = c

	return
}
