// Package printer hands receipt documents to the Epson TM Print Assistant app
// through its custom URL scheme.
package printer

import (
	"net/url"
	"strings"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
)

// DispatchBase is the scheme, host and path the printer application listens on.
const DispatchBase = "tmprintassistant://tmprintassistant.epson.com/print"

// TMAssistantBridge composes print dispatch URLs. It performs no I/O.
type TMAssistantBridge struct{}

func NewTMAssistantBridge() *TMAssistantBridge {
	return &TMAssistantBridge{}
}

var _ portssvc.PrinterBridge = (*TMAssistantBridge)(nil)

// Dispatch builds the URL. The parameter set and order are fixed by the printer application.
func (b *TMAssistantBridge) Dispatch(document string, returnURL string) domain.PrintDispatch {
	var sb strings.Builder
	sb.WriteString(DispatchBase)
	sb.WriteString("?success=")
	sb.WriteString(EncodeURIComponent(returnURL))
	sb.WriteString("&ver=1&data-type=eposprintxml&reselect=yes&cut=feed&data=")
	sb.WriteString(EncodeURIComponent(document))
	return domain.PrintDispatch{URL: sb.String()}
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s like the browser function of the same
// name: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
