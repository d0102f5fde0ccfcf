// Package actions names the operations the authorization policy reasons
// about.
package actions

import (
	"fmt"
	"net/http"
)

// The set of actions that can be used.
var (
	Read   = newAction("read")
	Create = newAction("create")
	Update = newAction("update")
	Delete = newAction("delete")
)

var actions = make(map[string]Action)

// Action represents an operation on a resource.
type Action struct {
	value string
}

func newAction(action string) Action {
	a := Action{action}
	actions[action] = a
	return a
}

// String returns the name of the action.
func (a Action) String() string {
	return a.value
}

// Equal provides support for the go-cmp package and testing.
func (a Action) Equal(a2 Action) bool {
	return a.value == a2.value
}

// Parse parses the string value and returns an action if one exists.
func Parse(value string) (Action, error) {
	action, exists := actions[value]
	if !exists {
		return Action{}, fmt.Errorf("invalid action %q", value)
	}

	return action, nil
}

// FromHTTPMethod maps a request method to the action it performs.
func FromHTTPMethod(method string) (Action, error) {
	switch method {
	case http.MethodGet, http.MethodHead:
		return Read, nil
	case http.MethodPost:
		return Create, nil
	case http.MethodPut, http.MethodPatch:
		return Update, nil
	case http.MethodDelete:
		return Delete, nil
	}

	return Action{}, fmt.Errorf("no action for method %s", method)
}
