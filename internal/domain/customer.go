package domain

import "time"

type Customer struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Address   string    `json:"address" bson:"address"`
	GSTNumber string    `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Customer) Snapshot() PartySnapshot {
	return PartySnapshot{
		CustomerID: c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		GSTNumber:  c.GSTNumber,
		Address:    c.Address,
	}
}
