package dto

// StatsResponse is the point-in-time view over the visitor collection.
type StatsResponse struct {
	Daily   int `json:"daily"`
	Monthly int `json:"monthly"`
	Total   int `json:"total"`
	Active  int `json:"active"`
}
