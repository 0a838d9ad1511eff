package models

import "time"

type Product struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	NameFi     string     `gorm:"type:varchar(255);not null" json:"name_fi"`
	NameEn     string     `gorm:"type:varchar(255);not null" json:"name_en"`
	DescFi     string     `gorm:"type:text" json:"desc_fi"`
	DescEn     string     `gorm:"type:text" json:"desc_en"`
	Price      float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Filename   string     `gorm:"type:varchar(255)" json:"filename"`
	Categories []Category `gorm:"many2many:product_categories" json:"categories"`
	Diets      []Diet     `gorm:"many2many:product_diets" json:"diets"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);unique;not null" json:"name"`
}

type Diet struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);unique;not null" json:"name"`
}

// LocalizedProduct is the single-language view served by the
// /menu/products/:lang endpoint.
type LocalizedProduct struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Filename    string   `json:"filename"`
	Categories  []string `json:"categories"`
	Diets       []string `json:"diets"`
}

// Localized folds the bilingual columns into one language. Finnish is
// served for "fi", English for anything else.
func (p Product) Localized(lang string) LocalizedProduct {
	lp := LocalizedProduct{
		ID:          p.ID,
		Name:        p.NameEn,
		Description: p.DescEn,
		Price:       p.Price,
		Filename:    p.Filename,
		Categories:  make([]string, 0, len(p.Categories)),
		Diets:       make([]string, 0, len(p.Diets)),
	}
	if lang == "fi" {
		lp.Name = p.NameFi
		lp.Description = p.DescFi
	}
	for _, c := range p.Categories {
		lp.Categories = append(lp.Categories, c.Name)
	}
	for _, d := range p.Diets {
		lp.Diets = append(lp.Diets, d.Name)
	}
	return lp
}
