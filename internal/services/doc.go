// Package services holds the error taxonomy shared by the external-tool
// clients, plus the clients themselves in subpackages.
package services
