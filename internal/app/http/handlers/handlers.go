package handlers

import (
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/service"
)

type Handlers struct {
	Customers   *service.CustomerService
	Products    *service.ProductService
	Salespeople *service.SalespersonService
	Quotations  *service.QuotationService

	percentPolicy quote.PercentPolicy
	log           *zap.Logger
}

func New(
	customers *service.CustomerService,
	products *service.ProductService,
	salespeople *service.SalespersonService,
	quotations *service.QuotationService,
	percentPolicy quote.PercentPolicy,
	log *zap.Logger,
) *Handlers {
	return &Handlers{
		Customers:     customers,
		Products:      products,
		Salespeople:   salespeople,
		Quotations:    quotations,
		percentPolicy: percentPolicy,
		log:           log,
	}
}
