package model

import "time"

type Facility struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Type        string    `json:"type" bson:"type" validate:"required,min=2,max=50"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=10000"`
	HourlyRate  float64   `json:"hourly_rate" bson:"hourly_rate" validate:"gte=0"`
	IsAvailable bool      `json:"is_available" bson:"is_available"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,url,max=500"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=300"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type FacilityUpdate struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Type        string   `json:"type,omitempty" validate:"omitempty,min=2,max=50"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=10000"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
	Address     *string  `json:"address,omitempty" validate:"omitempty,max=300"`
}
