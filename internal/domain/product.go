package domain

// Product represents a product record in the catalog. PartNumber is the
// business key and must be unique across the catalog; PartName is stored
// lowercased so substring search stays deterministic.
type Product struct {
	ID         int64   `json:"id" db:"id"`
	PartNumber string  `json:"partNumber" db:"part_number"`
	PartName   string  `json:"partName" db:"part_name"`
	Category   string  `json:"category" db:"category"`
	Price      float64 `json:"price" db:"price"`
	Stock      int     `json:"stock" db:"stock"`
}
