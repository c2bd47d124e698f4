package models

import "time"

type Member struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Phone       string    `bson:"phone" json:"phone"`
	NationalID  string    `bson:"national_id" json:"national_id"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	JoiningDate time.Time `bson:"joining_date" json:"joining_date"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoURL    string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
