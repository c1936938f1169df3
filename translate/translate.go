// Package translate formats user-visible text in the caller's locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
	printerLock sync.RWMutex
)

// current returns the active printer, matching the user locale on first use.
func current() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("asmls: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{"en-US"}
		}

		printerLock.Lock()
		if printer == nil {
			printer = message.NewPrinter(message.MatchLanguage(locales...))
		}
		printerLock.Unlock()
	})

	printerLock.RLock()
	defer printerLock.RUnlock()
	return printer
}

// Use forces the printer language, overriding the detected user locale.
func Use(tag language.Tag) {
	printerOnce.Do(func() {})

	printerLock.Lock()
	printer = message.NewPrinter(tag)
	printerLock.Unlock()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
