package domain

type IncidentStats struct {
	Minutes  int                      `json:"minutes"`
	Total    int64                    `json:"total"`
	ByStatus map[IncidentStatus]int64 `json:"byStatus"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"` // one day max
}
