// Package convert orchestrates one conversion request: validate the request
// shape, decode the source text into an ir.Node tree, encode the tree into
// the target format, and classify any failure into the stable error
// taxonomy the HTTP surface reports.
//
// Every failure is terminal for its request; there are no retries and no
// partial output. The package holds no state between requests.
package convert
