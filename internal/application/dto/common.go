package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail error de validación por campo.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InsufficientStockResponse cuerpo 409 cuando una venta excede la existencia.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ItemID    int64  `json:"item_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// IDResponse devuelve el id asignado a un recurso recién creado.
type IDResponse struct {
	ID int64 `json:"id"`
}

// BatchResponse ids asignados en el orden de envío.
type BatchResponse struct {
	IDs []int64 `json:"ids"`
}
