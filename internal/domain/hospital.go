package domain

import "time"

// Hospital - каноническая запись больницы, дедуплицированная по place_id
type Hospital struct {
	ID        string    `json:"id" db:"id"`
	PlaceID   string    `json:"place_id" db:"place_id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Lat       float64   `json:"lat" db:"lat"`
	Lng       float64   `json:"lng" db:"lng"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Services  []string  `json:"services" db:"services"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Location возвращает координаты записи
func (h *Hospital) Location() Location {
	return Location{Lat: h.Lat, Lng: h.Lng}
}
