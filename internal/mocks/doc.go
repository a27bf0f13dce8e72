// Package mocks provides centralized mock implementations for testing.
//
// The mocks use function fields: a test sets only the methods it cares
// about and every other method returns the zero value together with
// DefaultError. Real databases are cheap in this project (see package
// testdb), so these mocks exist for failure paths a real store cannot be
// made to produce on demand.
//
// Usage:
//
//	cards := &mocks.MockCardStore{
//	    UpdateFn: func(ctx context.Context, id int64, in domain.CardInput) error {
//	        return errors.New("disk I/O error")
//	    },
//	}
//	svc, err := service.NewCardService(cards, &mocks.MockDictionaryStore{}, nil)
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Add a compile-time assertion that the mock satisfies the interface
package mocks
