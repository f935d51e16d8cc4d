package dto

// LocationResponse is the simplified catalog entry served to clients:
// 2-D coordinates in millions of kilometers, suitable for map display.
type LocationResponse struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type ShipResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CargoCapacity float64 `json:"cargo_capacity"`
}
