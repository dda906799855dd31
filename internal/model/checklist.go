package model

type ChecklistItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TicketID uint   `gorm:"not null;index" json:"ticket_id"`
	Title    string `gorm:"not null" json:"title"`
	Done     bool   `gorm:"not null;default:false" json:"done"`
	Position int64  `gorm:"not null" json:"position"`
}
