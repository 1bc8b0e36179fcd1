package store

import "github.com/savioomio/sistema-notas-posto/internal/models"

// SortOrder is one sort dimension of a listing. The zero value means the
// dimension was not requested.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// ParseSortOrder maps the wire values "asc"/"desc"; anything else (including
// the "none" sentinel) is SortNone.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	default:
		return SortNone
	}
}

func (o SortOrder) direction() string {
	if o == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// TypeFilter selects clients by type.
type TypeFilter int

const (
	TypeAll TypeFilter = iota
	TypeIndividual
	TypeOrganization
)

func ParseTypeFilter(s string) TypeFilter {
	switch s {
	case models.ClientTypeIndividual:
		return TypeIndividual
	case models.ClientTypeOrganization:
		return TypeOrganization
	default:
		return TypeAll
	}
}

func (f TypeFilter) value() string {
	if f == TypeOrganization {
		return models.ClientTypeOrganization
	}
	return models.ClientTypeIndividual
}

// ClientStatusFilter selects clients by computed overdue state.
type ClientStatusFilter int

const (
	ClientStatusAll ClientStatusFilter = iota
	ClientStatusOverdue
	ClientStatusRegular
)

func ParseClientStatusFilter(s string) ClientStatusFilter {
	switch s {
	case "overdue":
		return ClientStatusOverdue
	case "regular":
		return ClientStatusRegular
	default:
		return ClientStatusAll
	}
}

// InvoiceStatusFilter selects invoices by lifecycle state, with overdue as a
// derived state (pending and past due).
type InvoiceStatusFilter int

const (
	InvoiceStatusAll InvoiceStatusFilter = iota
	InvoiceStatusPending
	InvoiceStatusPaid
	InvoiceStatusOverdue
)

func ParseInvoiceStatusFilter(s string) InvoiceStatusFilter {
	switch s {
	case models.InvoiceStatusPending:
		return InvoiceStatusPending
	case models.InvoiceStatusPaid:
		return InvoiceStatusPaid
	case "overdue":
		return InvoiceStatusOverdue
	default:
		return InvoiceStatusAll
	}
}

// ClientFilters narrows and orders client listings.
type ClientFilters struct {
	Type      TypeFilter
	Status    ClientStatusFilter
	NameOrder SortOrder
}

// InvoiceFilters narrows and orders invoice listings. When more than one sort
// dimension is set, the last one wins: purchase overrides due overrides value.
type InvoiceFilters struct {
	Status        InvoiceStatusFilter
	ValueOrder    SortOrder
	DueOrder      SortOrder
	PurchaseOrder SortOrder
}
