// Package mocks provides centralized testify mocks of the store interfaces
// and the event emitter, shared by the service and API tests.
//
// Usage:
//
//	import "github.com/phrazzld/scry-scheduler/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    cards := &mocks.CardStore{}
//	    cards.On("GetByID", mock.Anything, cardID).Return(card, nil)
//
//	    // Use the mock in your test...
//	    cards.AssertExpectations(t)
//	}
//
// WithTx on every store mock returns the mock itself unless an expectation
// for WithTx was registered, so transactional code paths can be exercised
// against a go-sqlmock database without further setup.
package mocks
