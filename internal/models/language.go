package models

import (
	"fmt"
	"strings"
)

// DisplayLanguage selects which of the two configured languages is on screen.
type DisplayLanguage int

const (
	LanguagePrimary DisplayLanguage = iota
	LanguageSecondary
)

// Toggle returns the other language
func (l DisplayLanguage) Toggle() DisplayLanguage {
	if l == LanguagePrimary {
		return LanguageSecondary
	}
	return LanguagePrimary
}

func (l DisplayLanguage) String() string {
	switch l {
	case LanguagePrimary:
		return "primary"
	case LanguageSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("DisplayLanguage(%d)", int(l))
	}
}

// Locale holds the calendar names and status strings for one language.
type Locale struct {
	Code   string
	Days   [7]string  // indexed by time.Weekday
	Months [12]string // indexed by time.Month - 1

	Loading     string
	MissingChat string
	FetchFailed string
	NoMessages  string
}

var locales = map[string]Locale{
	"it": {
		Code:        "it",
		Days:        [7]string{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"},
		Months:      [12]string{"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno", "Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre"},
		Loading:     "Caricamento dei messaggi...",
		MissingChat: "Errore: parametro 'chat' mancante nell'URL.",
		FetchFailed: "Impossibile caricare i messaggi. Controlla la connessione e l'ID della chat.",
		NoMessages:  "Nessun messaggio trovato in questo feed.",
	},
	"en": {
		Code:        "en",
		Days:        [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		Months:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		Loading:     "Loading messages...",
		MissingChat: "Error: 'chat' parameter is missing in the URL.",
		FetchFailed: "Could not load messages. Please check the connection and Chat ID.",
		NoMessages:  "No messages found in this feed.",
	},
}

// LookupLocale returns the locale for a language code such as "it" or "en"
func LookupLocale(code string) (Locale, bool) {
	l, ok := locales[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

// SupportedLanguages returns the language codes with a locale
func SupportedLanguages() []string {
	return []string{"it", "en"}
}
