// Package ports defines the contracts between the workflow core and its
// adapters: the services that own orders and refunds, the in-process entity
// board, and the transition observer.
package ports
