// Package backend is the HTTP client side of the contract with the services
// that own orders and refunds.
//
// Each domain has its own base URL:
//
//	GET  {base}/{id}              -> {"id": "...", "status": "..."}
//	POST {base}/{id}/transitions  <- {"entityId": "...", "targetStatus": "...", "notes": "..."}
//
// The owning service re-validates every transition. 409 and 422 responses are
// business rejections; any other failure means the service could not decide.
package backend
