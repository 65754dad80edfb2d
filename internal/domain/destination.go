package domain

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	ID          uuid.UUID   `json:"_id"`
	Title       string      `json:"title"`
	Location    string      `json:"location"`
	Rooms       int         `json:"rooms"`
	Bathrooms   int         `json:"bathrooms"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	PlaceImages []string    `json:"place_images"`
	Rating      float64     `json:"rating"`
	Coordinates Coordinates `json:"coordinates"`
	Pool        bool        `json:"pool"`
	CreatedAt   time.Time   `json:"createdAt"`
}
