package restaurantbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/types/subdomain"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID             *uuid.UUID
	Name           *string
	Subdomain      *subdomain.Subdomain
	Active         *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
