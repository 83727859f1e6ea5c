package domain

import "time"

type LocationStatus string

const (
	LocationActive   LocationStatus = "active"
	LocationInactive LocationStatus = "inactive"
)

func (s LocationStatus) Valid() bool {
	return s == LocationActive || s == LocationInactive
}

type Location struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	Code      string         `json:"code" bson:"code"`
	CityID    string         `json:"city_id" bson:"city_id"`
	Status    LocationStatus `json:"status" bson:"status"`
	Address   string         `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// Snapshot copies the identifying fields of the location as they are now.
func (l *Location) Snapshot() LocationSnapshot {
	return LocationSnapshot{LocationID: l.ID, Name: l.Name, Code: l.Code}
}

type LocationFilter struct {
	Search string
	Status LocationStatus
	CityID string
}
