package model

import "time"

// Stand status values.  AVAILABLE means no confirmed booking holds the
// stand; BOOKED means exactly one booking in state CONFIRMED references
// it.  The status field is written only by the booking core, inside the
// same transaction that moves the booking.
const (
	StandAvailable = "AVAILABLE"
	StandBooked    = "BOOKED"
)

// Stand type values.
const (
	StandTypeStandard = "STANDARD"
	StandTypePremium  = "PREMIUM"
	StandTypeCorner   = "CORNER"
)

// Stand describes a physical exhibition stand positioned on a hall map.
// Stands are uniquely identified by their hall map and stand number.
// Geometry fields are opaque to the booking core; they exist for floor
// plan rendering only.  This struct corresponds to a row in the
// `stands` table.
//
// Fields:
//  ID          – primary key identifier.
//  HallMapID   – hall map the stand is drawn on.
//  StandNumber – label of the stand within the hall map, e.g. "A-12".
//  PositionX   – horizontal position on the map.
//  PositionY   – vertical position on the map.
//  Width       – stand width in map units.
//  Height      – stand height in map units.
//  StandType   – category (STANDARD, PREMIUM, CORNER).
//  Status      – availability (AVAILABLE, BOOKED).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Stand struct {
	ID          uint64    // stands.id
	HallMapID   uint64    // stands.hall_map_id
	StandNumber string    // stands.stand_number
	PositionX   int32     // stands.position_x
	PositionY   int32     // stands.position_y
	Width       uint32    // stands.width
	Height      uint32    // stands.height
	StandType   string    // stands.stand_type
	Status      string    // stands.status
	CreatedAt   time.Time // stands.created_at
	UpdatedAt   time.Time // stands.updated_at
}
