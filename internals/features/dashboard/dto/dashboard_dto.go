package dto

type DashboardStats struct {
	Faculty    int64 `json:"faculty"`
	Courses    int64 `json:"courses"`
	Batches    int64 `json:"batches"`
	Students   int64 `json:"students"`
	Levels     int64 `json:"levels"`
	Programmes int64 `json:"programmes"`
}
