package model

type Label struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	WorkspaceID uint   `gorm:"not null;index" json:"workspace_id"`
	Name        string `gorm:"not null" json:"name"`
	Color       string `gorm:"not null" json:"color"`

	Tickets []Ticket `gorm:"many2many:ticket_labels" json:"-"`
}
