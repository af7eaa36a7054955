package models

// Product is a catalog record. Price is in minor currency units.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}
