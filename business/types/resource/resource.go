// Package resource names the things the backoffice authorization policy
// protects.
package resource

import "fmt"

// The set of resources that can be used.
var (
	Restaurant     = newResource("restaurant")
	RestaurantUser = newResource("restaurant_user")
)

var resources = make(map[string]Resource)

// Resource represents a protected resource.
type Resource struct {
	value string
}

func newResource(resource string) Resource {
	r := Resource{resource}
	resources[resource] = r
	return r
}

// String returns the name of the resource.
func (r Resource) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Resource) Equal(r2 Resource) bool {
	return r.value == r2.value
}

// Parse parses the string value and returns a resource if one exists.
func Parse(value string) (Resource, error) {
	resource, exists := resources[value]
	if !exists {
		return Resource{}, fmt.Errorf("invalid resource %q", value)
	}

	return resource, nil
}
