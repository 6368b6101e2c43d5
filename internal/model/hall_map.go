package model

import "time"

// HallMap represents a floor plan of one hall inside an exhibition
// event.  Stands are positioned on a hall map.  This struct corresponds
// to a row in the `hall_maps` table.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – exhibition event this map belongs to.
//  Name      – human readable label, e.g. "Main Hall".
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type HallMap struct {
	ID        uint64    // hall_maps.id
	EventID   uint64    // hall_maps.event_id
	Name      string    // hall_maps.name
	CreatedAt time.Time // hall_maps.created_at
	UpdatedAt time.Time // hall_maps.updated_at
}
