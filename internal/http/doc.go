// Package http provides the HTTP client used by the catalog front-end.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Dataset and image retrieval
//   - Form submission to the contact relay
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch the dataset
//	data, err := client.Get(ctx, "http://localhost:8080/assets/data/productos.json")
//
//	// Submit a form; validation failures come back as a Response, not an error
//	resp, err := client.PostForm(ctx, relayURL, values)
//	if err == nil && !resp.OK() {
//	    fmt.Println(resp.Body)
//	}
package http
