package dto

// NameCheckResponse reports whether an area name is free within a community.
type NameCheckResponse struct {
	Name      string `json:"name" example:"Juanita Creek Trail"`
	Available bool   `json:"available" example:"true"`
}
