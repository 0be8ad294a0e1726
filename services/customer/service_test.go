package customer_test

import (
	"fmt"
	"testing"

	"customer-records/database"
	addressModel "customer-records/models/address"
	customerModel "customer-records/models/customer"
	customerService "customer-records/services/customer"
	addressTypes "customer-records/types/address"
	customerTypes "customer-records/types/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*customerService.Service, *gorm.DB) {
	// A named in-memory SQLite database so every connection in the pool
	// sees the same data, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")

	// SQLite only supports one writer; a single pooled connection avoids
	// lock contention between the test and the async logger.
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(testDB), "failed to migrate test database")

	return customerService.NewCustomerService(testDB), testDB
}

func seedCustomer(t *testing.T, svc *customerService.Service, first, last, phone string) *customerModel.Customer {
	record, err := svc.Create(customerTypes.StoreCustomerRequest{
		FirstName:   first,
		LastName:    last,
		PhoneNumber: phone,
	})
	require.NoError(t, err)
	return record
}

func seedAddress(t *testing.T, svc *customerService.Service, customerID uint, details, city, state, pin string) *addressModel.Address {
	record, err := svc.AddAddress(customerID, addressTypes.StoreAddressRequest{
		AddressDetails: details,
		City:           city,
		State:          state,
		PinCode:        pin,
	})
	require.NoError(t, err)
	return record
}

func TestListSearchAcrossColumns(t *testing.T) {
	svc, _ := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")
	seedAddress(t, svc, ada.ID, "10 Downing St", "London", "LDN", "SW1A2AA")
	grace := seedCustomer(t, svc, "Grace", "Hopper", "555-0101")
	seedAddress(t, svc, grace.ID, "1 Navy Yard", "Arlington", "VA", "22202")

	cases := []struct {
		name   string
		search string
		want   string
	}{
		{"matches address city", "London", "Ada"},
		{"matches last name case-insensitively", "lovelace", "Ada"},
		{"matches first name", "grace", "Grace"},
		{"matches address state", "VA", "Grace"},
		{"matches pin code", "SW1A2AA", "Ada"},
		{"matches substring of pin code", "1A2A", "Ada"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.List(customerTypes.ListCustomersQuery{Search: tc.search})
			require.NoError(t, err)
			require.Len(t, result.Customers, 1)
			assert.Equal(t, tc.want, result.Customers[0].FirstName)
			assert.Equal(t, int64(1), result.Pagination.Total)
		})
	}

	t.Run("empty search matches everyone", func(t *testing.T) {
		result, err := svc.List(customerTypes.ListCustomersQuery{})
		require.NoError(t, err)
		assert.Len(t, result.Customers, 2)
		assert.Equal(t, int64(2), result.Pagination.Total)
	})

	t.Run("facets collapse into one phrase", func(t *testing.T) {
		// city+pincode of the same customer joined by a space do not form a
		// substring of any single column, so nothing matches.
		result, err := svc.List(customerTypes.ListCustomersQuery{City: "London", PinCode: "SW1A2AA"})
		require.NoError(t, err)
		assert.Empty(t, result.Customers)

		result, err = svc.List(customerTypes.ListCustomersQuery{City: "Lond"})
		require.NoError(t, err)
		require.Len(t, result.Customers, 1)
		assert.Equal(t, "Ada", result.Customers[0].FirstName)
	})
}

func TestListAddressCountIgnoresFilter(t *testing.T) {
	svc, _ := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")
	seedAddress(t, svc, ada.ID, "10 Downing St", "London", "LDN", "SW1A2AA")
	seedAddress(t, svc, ada.ID, "2 Rue Morgue", "Paris", "IDF", "75001")
	seedAddress(t, svc, ada.ID, "5th Avenue", "New York", "NY", "10001")

	// Only one of the three addresses matches the phrase; the reported
	// count must still be the full owned set.
	result, err := svc.List(customerTypes.ListCustomersQuery{Search: "London"})
	require.NoError(t, err)
	require.Len(t, result.Customers, 1)
	assert.Equal(t, int64(3), result.Customers[0].AddressCount)

	// A name match with zero matching addresses reports the same count.
	result, err = svc.List(customerTypes.ListCustomersQuery{Search: "Ada"})
	require.NoError(t, err)
	require.Len(t, result.Customers, 1)
	assert.Equal(t, int64(3), result.Customers[0].AddressCount)
}

func TestListNoFanOutOnMultipleMatchingAddresses(t *testing.T) {
	svc, _ := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")
	seedAddress(t, svc, ada.ID, "10 Downing St", "London", "LDN", "SW1A2AA")
	seedAddress(t, svc, ada.ID, "221B Baker St", "London", "LDN", "NW16XE")

	result, err := svc.List(customerTypes.ListCustomersQuery{Search: "London"})
	require.NoError(t, err)
	assert.Len(t, result.Customers, 1, "a customer must appear once no matter how many addresses match")
	assert.Equal(t, int64(1), result.Pagination.Total)
	assert.Equal(t, int64(2), result.Customers[0].AddressCount)
}

func TestListPagination(t *testing.T) {
	svc, _ := setupService(t)

	// Identical first names force the tie-break to carry the ordering.
	for i := 0; i < 15; i++ {
		seedCustomer(t, svc, "Sam", "Doe", fmt.Sprintf("555-02%02d", i))
	}

	page1, err := svc.List(customerTypes.ListCustomersQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Customers, 10)
	assert.Equal(t, int64(15), page1.Pagination.Total)
	assert.Equal(t, int64(2), page1.Pagination.TotalPages)

	page2, err := svc.List(customerTypes.ListCustomersQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Customers, 5)
	assert.Equal(t, 2, page2.Pagination.Page)

	// Pages must be exhaustive and non-overlapping.
	seen := make(map[uint]bool)
	for _, record := range append(page1.Customers, page2.Customers...) {
		assert.False(t, seen[record.ID], "customer %d appeared on two pages", record.ID)
		seen[record.ID] = true
	}
	assert.Len(t, seen, 15)

	t.Run("page past the end is empty", func(t *testing.T) {
		page3, err := svc.List(customerTypes.ListCustomersQuery{Page: 3, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page3.Customers)
		assert.Equal(t, int64(15), page3.Pagination.Total)
	})

	t.Run("defaults apply for zero values", func(t *testing.T) {
		result, err := svc.List(customerTypes.ListCustomersQuery{})
		require.NoError(t, err)
		assert.Len(t, result.Customers, 10)
		assert.Equal(t, 1, result.Pagination.Page)
		assert.Equal(t, 10, result.Pagination.Limit)
	})
}

func TestListSorting(t *testing.T) {
	svc, _ := setupService(t)

	seedCustomer(t, svc, "Charlie", "Baker", "555-0300")
	seedCustomer(t, svc, "Alice", "Young", "555-0301")
	seedCustomer(t, svc, "Bob", "Mason", "555-0302")

	t.Run("default sorts by first name ascending", func(t *testing.T) {
		result, err := svc.List(customerTypes.ListCustomersQuery{})
		require.NoError(t, err)
		require.Len(t, result.Customers, 3)
		assert.Equal(t, "Alice", result.Customers[0].FirstName)
		assert.Equal(t, "Bob", result.Customers[1].FirstName)
		assert.Equal(t, "Charlie", result.Customers[2].FirstName)
	})

	t.Run("descending by last name", func(t *testing.T) {
		result, err := svc.List(customerTypes.ListCustomersQuery{SortBy: "last_name", Order: "DESC"})
		require.NoError(t, err)
		require.Len(t, result.Customers, 3)
		assert.Equal(t, "Young", result.Customers[0].LastName)
		assert.Equal(t, "Mason", result.Customers[1].LastName)
		assert.Equal(t, "Baker", result.Customers[2].LastName)
	})

	t.Run("rejects unknown sort column", func(t *testing.T) {
		_, err := svc.List(customerTypes.ListCustomersQuery{SortBy: "phone_number; DROP TABLE customers"})
		assert.ErrorIs(t, err, customerService.ErrInvalidSortColumn)
	})

	t.Run("rejects unknown order", func(t *testing.T) {
		_, err := svc.List(customerTypes.ListCustomersQuery{Order: "sideways"})
		assert.ErrorIs(t, err, customerService.ErrInvalidSortOrder)
	})
}

func TestCreateDuplicatePhone(t *testing.T) {
	svc, testDB := setupService(t)

	seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")

	_, err := svc.Create(customerTypes.StoreCustomerRequest{
		FirstName:   "Imposter",
		LastName:    "Lovelace",
		PhoneNumber: "555-0100",
	})
	assert.ErrorIs(t, err, customerService.ErrDuplicatePhone)

	var count int64
	testDB.Model(&customerModel.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count, "conflicting create must not insert a row")
}

func TestUpdate(t *testing.T) {
	svc, _ := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")
	seedCustomer(t, svc, "Grace", "Hopper", "555-0101")

	t.Run("updates fields in place", func(t *testing.T) {
		updated, err := svc.Update(ada.ID, customerTypes.StoreCustomerRequest{
			FirstName:   "Augusta",
			LastName:    "King",
			PhoneNumber: "555-0100",
		})
		require.NoError(t, err)
		assert.Equal(t, ada.ID, updated.ID)
		assert.Equal(t, "Augusta", updated.FirstName)
		assert.Equal(t, "King", updated.LastName)
	})

	t.Run("conflicts on another customer's phone", func(t *testing.T) {
		_, err := svc.Update(ada.ID, customerTypes.StoreCustomerRequest{
			FirstName:   "Augusta",
			LastName:    "King",
			PhoneNumber: "555-0101",
		})
		assert.ErrorIs(t, err, customerService.ErrDuplicatePhone)
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		_, err := svc.Update(9999, customerTypes.StoreCustomerRequest{
			FirstName:   "Nobody",
			LastName:    "Here",
			PhoneNumber: "555-0999",
		})
		assert.ErrorIs(t, err, customerService.ErrCustomerNotFound)
	})
}

func TestDeleteCascadesToAddresses(t *testing.T) {
	svc, testDB := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")
	seedAddress(t, svc, ada.ID, "10 Downing St", "London", "LDN", "SW1A2AA")
	seedAddress(t, svc, ada.ID, "2 Rue Morgue", "Paris", "IDF", "75001")
	grace := seedCustomer(t, svc, "Grace", "Hopper", "555-0101")
	kept := seedAddress(t, svc, grace.ID, "1 Navy Yard", "Arlington", "VA", "22202")

	require.NoError(t, svc.Delete(ada.ID))

	_, err := svc.Get(ada.ID)
	assert.ErrorIs(t, err, customerService.ErrCustomerNotFound)

	var orphans int64
	testDB.Model(&addressModel.Address{}).Where("customer_id = ?", ada.ID).Count(&orphans)
	assert.Equal(t, int64(0), orphans, "no address may outlive its customer")

	// Another customer's addresses are untouched.
	var remaining addressModel.Address
	require.NoError(t, testDB.First(&remaining, kept.ID).Error)
	assert.Equal(t, grace.ID, remaining.CustomerID)

	t.Run("deleting again reports not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ada.ID), customerService.ErrCustomerNotFound)
	})
}

func TestDeleteAddressLeavesSiblings(t *testing.T) {
	svc, testDB := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")
	first := seedAddress(t, svc, ada.ID, "10 Downing St", "London", "LDN", "SW1A2AA")
	second := seedAddress(t, svc, ada.ID, "2 Rue Morgue", "Paris", "IDF", "75001")

	require.NoError(t, svc.DeleteAddress(first.ID))

	var sibling addressModel.Address
	require.NoError(t, testDB.First(&sibling, second.ID).Error)
	assert.Equal(t, "Paris", sibling.City)

	_, err := svc.Get(ada.ID)
	assert.NoError(t, err, "owning customer must survive an address delete")

	t.Run("unknown address reports not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteAddress(first.ID), customerService.ErrAddressNotFound)
	})
}

func TestAddressOperations(t *testing.T) {
	svc, _ := setupService(t)

	ada := seedCustomer(t, svc, "Ada", "Lovelace", "555-0100")

	t.Run("add address for unknown customer fails", func(t *testing.T) {
		_, err := svc.AddAddress(9999, addressTypes.StoreAddressRequest{
			AddressDetails: "Nowhere",
			City:           "Ghost Town",
			State:          "ZZ",
			PinCode:        "00000",
		})
		assert.ErrorIs(t, err, customerService.ErrCustomerNotFound)
	})

	t.Run("list addresses for a customer", func(t *testing.T) {
		seedAddress(t, svc, ada.ID, "10 Downing St", "London", "LDN", "SW1A2AA")
		seedAddress(t, svc, ada.ID, "2 Rue Morgue", "Paris", "IDF", "75001")

		records, err := svc.ListAddresses(ada.ID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "London", records[0].City)
		assert.Equal(t, "Paris", records[1].City)
	})

	t.Run("update address by id", func(t *testing.T) {
		records, err := svc.ListAddresses(ada.ID)
		require.NoError(t, err)
		require.NotEmpty(t, records)

		updated, err := svc.UpdateAddress(records[0].ID, addressTypes.StoreAddressRequest{
			AddressDetails: "11 Downing St",
			City:           "London",
			State:          "LDN",
			PinCode:        "SW1A2AB",
		})
		require.NoError(t, err)
		assert.Equal(t, "11 Downing St", updated.AddressDetails)
		assert.Equal(t, "SW1A2AB", updated.PinCode)
	})

	t.Run("update unknown address reports not found", func(t *testing.T) {
		_, err := svc.UpdateAddress(9999, addressTypes.StoreAddressRequest{
			AddressDetails: "Nowhere",
			City:           "Ghost Town",
			State:          "ZZ",
			PinCode:        "00000",
		})
		assert.ErrorIs(t, err, customerService.ErrAddressNotFound)
	})
}
