// Package errors provides coded, actionable errors for vroute.
//
// Every error carries a code (e.g. "E100") that maps to a registered
// category, message, and explanation. Codes make usage errors recognizable in
// logs and let callers test for them with HasCode:
//
//	err := errors.New("E101").
//	    WithDetail(`target "http://[::1" cannot be parsed`).
//	    Wrap(parseErr)
//
//	fmt.Println(err.Format())
//	// ERROR E101: Malformed navigation target
//	//
//	//   target "http://[::1" cannot be parsed
//
// # Error Categories
//
//   - usage: programming mistakes such as reading router state outside a router
//   - routing: invalid route tables and patterns
//   - hydration: server/client resolution mismatches
//   - protocol: live session wire errors
//   - config: configuration loading and validation
package errors
