package models

import "time"

// Product is a row of the relational Product table. Type holds the short
// type code (ProductType.BriefName), not the internal type id.
type Product struct {
	ID         int
	Name       string
	OnSale     bool
	OnSaleFrom time.Time
	Price      int64
	Type       string
}

// GetID satisfies the CLI quiet-mode formatter.
func (p *Product) GetID() int { return p.ID }
