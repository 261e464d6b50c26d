package service

import (
	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/repository"
)

// Repositories is the storage the services run on; both the local store
// and Postgres provide one.
type Repositories struct {
	Customers   repository.Repository[catalog.Customer]
	Products    repository.Repository[catalog.Product]
	Salespeople repository.Repository[catalog.Salesperson]
	Quotations  repository.Repository[quote.Quotation]
}
