package dto

import "github.com/shopspring/decimal"

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	TaxID   string `json:"tax_id" validate:"required"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// CompanyResponse contraparte en respuestas.
type CompanyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	PlateNumber string `json:"plate_number" validate:"required"`
	Description string `json:"description,omitempty"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plate_number"`
	Description string `json:"description,omitempty"`
}

// CreateDriverRequest body para POST /api/drivers.
type CreateDriverRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Phone         string `json:"phone,omitempty"`
}

// DriverResponse conductor en respuestas.
type DriverResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone,omitempty"`
}

// CreateCatalogItemRequest body para POST /api/catalog-items.
type CreateCatalogItemRequest struct {
	Code  string          `json:"code" validate:"required"`
	Name  string          `json:"name" validate:"required,min=2"`
	Unit  string          `json:"unit" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// CatalogItemResponse artículo en respuestas.
type CatalogItemResponse struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}
