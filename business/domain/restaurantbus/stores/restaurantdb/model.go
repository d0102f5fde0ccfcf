package restaurantdb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/subdomain"
)

type restaurantDB struct {
	ID        uuid.UUID `db:"restaurant_id"`
	Name      string    `db:"name"`
	Subdomain string    `db:"subdomain"`
	Active    bool      `db:"active"`
	Settings  string    `db:"settings"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBRestaurant(bus restaurantbus.Restaurant) restaurantDB {
	settings := string(bus.Settings)
	if settings == "" {
		settings = "{}"
	}

	return restaurantDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Subdomain: bus.Subdomain.String(),
		Active:    bus.Active,
		Settings:  settings,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusRestaurant(db restaurantDB) (restaurantbus.Restaurant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return restaurantbus.Restaurant{}, fmt.Errorf("parse name: %w", err)
	}

	sub, err := subdomain.Parse(db.Subdomain)
	if err != nil {
		return restaurantbus.Restaurant{}, fmt.Errorf("parse subdomain: %w", err)
	}

	bus := restaurantbus.Restaurant{
		ID:        db.ID,
		Name:      nme,
		Subdomain: sub,
		Active:    db.Active,
		Settings:  json.RawMessage(db.Settings),
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusRestaurants(dbs []restaurantDB) ([]restaurantbus.Restaurant, error) {
	bus := make([]restaurantbus.Restaurant, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusRestaurant(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
