package domain

// Product описывает товар каталога. Каталог статичен: через API он не меняется.
// Price хранится в минимальных денежных единицах.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    int64   `json:"price"`
	Category string  `json:"category"`
	Size     string  `json:"size"`
	Gender   string  `json:"gender"`
	Stock    int     `json:"stock"`
	Rating   *int    `json:"rating,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// ValidateInvariants проверяет товар перед загрузкой в хранилище.
func (p *Product) ValidateInvariants() []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrProductPriceInvalid)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrProductStockInvalid)
	}
	return errs
}
