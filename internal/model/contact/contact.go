// Package contact holds the inquiry submitted through the contact/booking
// form: the closed subject and locale enums, their localized tables and
// the request validation rules.
package contact

import (
	"strings"
)

// Subject is the category picked on the form.
type Subject uint8

const (
	SubjectVTC Subject = iota
	SubjectBooking
	SubjectInformation
	SubjectReclamation
	SubjectOther

	subjectCount
)

var subjectKeys = [subjectCount]string{
	SubjectVTC:         "vtc",
	SubjectBooking:     "booking",
	SubjectInformation: "information",
	SubjectReclamation: "reclamation",
	SubjectOther:       "other",
}

// Subjects lists every subject in form order.
func Subjects() []Subject {
	out := make([]Subject, 0, subjectCount)
	for s := Subject(0); s < subjectCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseSubject maps the wire key ("vtc", "booking", ...) to a Subject.
func ParseSubject(key string) (Subject, bool) {
	for s, k := range subjectKeys {
		if k == key {
			return Subject(s), true
		}
	}
	return 0, false
}

// Valid reports whether s is one of the form subjects.
func (s Subject) Valid() bool {
	return s < subjectCount
}

// String returns the wire key.
func (s Subject) String() string {
	if s >= subjectCount {
		return "unknown"
	}
	return subjectKeys[s]
}

// Locale is the language used for messages and emails.
type Locale uint8

const (
	LocaleFR Locale = iota
	LocaleEN

	localeCount
)

// Locales lists every supported locale.
func Locales() []Locale {
	return []Locale{LocaleFR, LocaleEN}
}

// ResolveLocale returns LocaleEN for "en" and LocaleFR for anything else,
// including the empty string.
func ResolveLocale(s string) Locale {
	if s == "en" {
		return LocaleEN
	}
	return LocaleFR
}

func (l Locale) String() string {
	if l == LocaleEN {
		return "en"
	}
	return "fr"
}

// Inquiry is a validated, normalized submission.
type Inquiry struct {
	FirstName string
	LastName  string
	Email     string

	// Phone keeps digits and spaces only, without country calling code.
	Phone string

	Subject Subject

	// Position and Destination are empty unless Subject is SubjectVTC.
	Position    string
	Destination string

	Message string
	Locale  Locale
}

// FullName joins first and last name.
func (i Inquiry) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// IsVTC reports whether the inquiry is a ride request.
func (i Inquiry) IsVTC() bool {
	return i.Subject == SubjectVTC
}

// HasRoute reports whether the pickup/destination block applies.
func (i Inquiry) HasRoute() bool {
	return i.IsVTC() && i.Position != "" && i.Destination != ""
}

// FormatPhone prefixes the phone with the country calling code.
func FormatPhone(prefix, phone string) string {
	if phone == "" {
		return ""
	}
	if prefix == "" {
		return phone
	}
	return prefix + " " + phone
}

// sanitizePhone keeps digits and spaces.
func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
