package models

import "time"

// Reservation books one table for one date. The composite unique index on
// (table_id, reservation_date) is what keeps two concurrent requests from
// double-booking the same table: the second insert fails at the store.
type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          *uint     `gorm:"index" json:"user_id,omitempty"`
	TableID         uint      `gorm:"not null;uniqueIndex:uq_table_date" json:"table_id"`
	ReservationDate string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_table_date" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	PeopleCount     int       `gorm:"not null" json:"people_count"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone           string    `gorm:"type:varchar(50);not null" json:"phone"`
	Comments        string    `gorm:"type:text" json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
}

type DiningTable struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TableSize int  `gorm:"not null" json:"table_size"`
}
