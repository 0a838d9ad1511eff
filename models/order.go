package models

import "time"

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	Address    string      `gorm:"type:varchar(255)" json:"address"`
	Name       string      `gorm:"type:varchar(255)" json:"name"`
	Email      string      `gorm:"type:varchar(255)" json:"email"`
	Phone      string      `gorm:"type:varchar(50)" json:"phone"`
	TotalPrice float64     `gorm:"type:decimal(10,2);not null" json:"total_price"`
	SessionID  string      `gorm:"type:varchar(255)" json:"session_id,omitempty"`
	Status     string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Lines      []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
}

// OrderLine carries a snapshot of the product at order time. Later edits
// to the catalog never change what a historical order says it sold.
type OrderLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	Order     Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	NameFi    string  `gorm:"type:varchar(255);not null" json:"name_fi"`
	NameEn    string  `gorm:"type:varchar(255);not null" json:"name_en"`
	DescFi    string  `gorm:"type:text" json:"desc_fi"`
	DescEn    string  `gorm:"type:text" json:"desc_en"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}

// LocalizedLine is one order line rendered in a single language.
type LocalizedLine struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (l OrderLine) Localized(lang string) LocalizedLine {
	ll := LocalizedLine{
		ProductID:   l.ProductID,
		Name:        l.NameEn,
		Description: l.DescEn,
		Quantity:    l.Quantity,
		Price:       l.Price,
	}
	if lang == "fi" {
		ll.Name = l.NameFi
		ll.Description = l.DescFi
	}
	return ll
}
