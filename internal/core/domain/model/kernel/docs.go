// Package kernel holds value objects shared by the workflow domains.
package kernel
