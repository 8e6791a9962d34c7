package es

import "time"

// StartupES 创业公司搜索文档
type StartupES struct {
	ID         uint64    `json:"id"`
	OwnerID    uint64    `json:"owner_id"`
	Name       string    `json:"name"`
	Pitch      string    `json:"pitch"`
	LaunchedAt time.Time `json:"launched_at"`
}
