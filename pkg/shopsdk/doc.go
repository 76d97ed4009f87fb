// Package shopsdk is a typed client for the storefront backend.
//
// Every response body is an envelope {message, data}; the client unwraps
// data into Go types and turns non-2xx responses into *APIError.
//
// The client does not attach credentials itself. Give it an http.Client
// whose transport does (see internal/transport), so that every call made
// through the SDK is augmented the same way.
//
//	client := shopsdk.NewClient("http://localhost:8080", &http.Client{
//		Transport: augmenter,
//	})
//	cart, err := client.GetCart(ctx)
package shopsdk
