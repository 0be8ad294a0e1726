package customer

import (
	"errors"
	"fmt"
	"strings"

	addressModel "customer-records/models/address"
	customerModel "customer-records/models/customer"
	"customer-records/types"
	customerTypes "customer-records/types/customer"

	"gorm.io/gorm"
)

// List parameter errors. Both are caller mistakes and map to 400.
var (
	ErrInvalidSortColumn = errors.New("sort_by must be one of: first_name, last_name, phone_number, id")
	ErrInvalidSortOrder  = errors.New("order must be asc or desc")
)

// sortColumns maps the external sort keys to the column actually ordered
// by. Anything outside this map is rejected, never interpolated.
var sortColumns = map[string]string{
	"first_name":   "first_name",
	"last_name":    "last_name",
	"phone_number": "phone_number",
	"id":           "id",
}

const defaultPageLimit = 10

// ListResult is one page of matching customers plus pagination metadata
type ListResult struct {
	Customers  []customerModel.Customer
	Pagination types.Pagination
}

// List returns the filtered, sorted, paginated customer page together with
// the total distinct match count and per-customer address counts.
//
// The search runs as two queries over the same filter (count, then page)
// and a third one aggregating address counts for exactly the page's ids.
// Counting over the unfiltered addresses table keeps address_count equal to
// the full owned set even when only some addresses match the phrase, and
// the id subquery in the filter keeps one row per customer regardless of
// how many of its addresses match.
func (s *Service) List(query customerTypes.ListCustomersQuery) (*ListResult, error) {
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "first_name"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, ErrInvalidSortColumn
	}

	order := strings.ToLower(query.Order)
	if order == "" {
		order = "asc"
	}
	if order != "asc" && order != "desc" {
		return nil, ErrInvalidSortOrder
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	offset := (page - 1) * limit

	phrase := buildSearchPhrase(query)

	var total int64
	if err := s.applySearch(s.DB.Model(&customerModel.Customer{}), phrase).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	var customers []customerModel.Customer
	err := s.applySearch(s.DB.Model(&customerModel.Customer{}), phrase).
		Order(column + " " + order).
		Order("id asc"). // tie-break so pages never overlap on repeated sort keys
		Offset(offset).
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	if err := s.attachAddressCounts(customers); err != nil {
		return nil, err
	}

	return &ListResult{
		Customers: customers,
		Pagination: types.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

// buildSearchPhrase collapses the free-text query and the city/state/pincode
// facets into one phrase. The facets are not independent AND-ed filters;
// the combined phrase is matched as a single substring across all columns.
func buildSearchPhrase(query customerTypes.ListCustomersQuery) string {
	parts := make([]string, 0, 4)
	for _, facet := range []string{query.Search, query.City, query.State, query.PinCode} {
		if trimmed := strings.TrimSpace(facet); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// applySearch adds the search predicate to tx: a customer matches when the
// phrase is a case-insensitive substring of its own name fields or of the
// city, state or pin code of any address it owns. An empty phrase matches
// everything.
func (s *Service) applySearch(tx *gorm.DB, phrase string) *gorm.DB {
	if phrase == "" {
		return tx
	}

	pattern := "%" + strings.ToLower(phrase) + "%"
	matchingOwners := s.DB.Model(&addressModel.Address{}).
		Select("customer_id").
		Where("LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(pin_code) LIKE ?", pattern, pattern, pattern)

	return tx.Where(
		"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR customers.id IN (?)",
		pattern, pattern, matchingOwners,
	)
}

type addressCountRow struct {
	CustomerID   uint  `gorm:"column:customer_id"`
	AddressCount int64 `gorm:"column:address_count"`
}

// attachAddressCounts fills AddressCount for every customer on the page.
// The count runs against the unfiltered addresses table for exactly the
// page's ids, so it is never reduced by the active search filter.
func (s *Service) attachAddressCounts(customers []customerModel.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(customers))
	for i := range customers {
		ids = append(ids, customers[i].ID)
	}

	var rows []addressCountRow
	err := s.DB.Model(&addressModel.Address{}).
		Select("customer_id, COUNT(id) AS address_count").
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to count addresses: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CustomerID] = row.AddressCount
	}
	for i := range customers {
		customers[i].AddressCount = counts[customers[i].ID]
	}
	return nil
}
