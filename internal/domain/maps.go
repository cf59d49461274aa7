package domain

// Location - географическая точка в формате провайдера карт
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry - обертка геометрии из ответов Google Maps
type Geometry struct {
	Location Location `json:"location"`
}

// PlaceResult - сырой результат nearby-поиска до дедупликации
type PlaceResult struct {
	PlaceID              string   `json:"place_id"`
	Name                 string   `json:"name"`
	Vicinity             string   `json:"vicinity"`
	Geometry             Geometry `json:"geometry"`
	FormattedPhoneNumber string   `json:"formatted_phone_number,omitempty"`
	Types                []string `json:"types,omitempty"`
}

// Route - первый маршрут из ответа Directions API
type Route struct {
	Summary          string     `json:"summary"`
	Legs             []RouteLeg `json:"legs"`
	OverviewPolyline Polyline   `json:"overview_polyline"`
	Copyrights       string     `json:"copyrights,omitempty"`
}

// RouteLeg - участок маршрута
type RouteLeg struct {
	Distance      TextValue `json:"distance"`
	Duration      TextValue `json:"duration"`
	StartAddress  string    `json:"start_address,omitempty"`
	EndAddress    string    `json:"end_address,omitempty"`
	StartLocation Location  `json:"start_location"`
	EndLocation   Location  `json:"end_location"`
}

// TextValue - пара "человекочитаемый текст + числовое значение"
type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Polyline - закодированная геометрия маршрута
type Polyline struct {
	Points string `json:"points"`
}
