// Package memory provides in-process adapters. The entity board here is the
// only mutable state shared between requests and it is lost on restart; the
// services that own orders and refunds remain the source of truth.
package memory
