package services

import "github.com/SscSPs/kontrollavgift/internal/core/domain"

// PrinterBridge hands a receipt document to the external printer application.
// Delivery is fire-and-forget: nothing reports whether the receipt printed.
type PrinterBridge interface {
	Dispatch(document string, returnURL string) domain.PrintDispatch
}
