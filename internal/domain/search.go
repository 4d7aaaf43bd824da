package domain

import (
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AvailablePatients filters roster down to the patients that can be added to
// a trip whose current passengers are given: not already on the trip, not
// traveling elsewhere, and matching search by name or CPF.
//
// Name matching ignores case and accents ("jose" finds "José"). CPF matching
// compares digits only, so "123.456" finds "12345678900". An empty or blank
// search matches everyone. The roster is never modified; the result is
// ordered by name.
func AvailablePatients(roster []Patient, passengers []Passenger, search string) []Patient {
	onTrip := make(map[uuid.UUID]struct{}, len(passengers))
	for _, p := range passengers {
		onTrip[p.PatientID] = struct{}{}
	}

	query := foldText(strings.TrimSpace(search))
	queryDigits := DigitsOnly(search)

	out := make([]Patient, 0, len(roster))
	for _, p := range roster {
		if _, ok := onTrip[p.ID]; ok {
			continue
		}
		if p.Traveling() {
			continue
		}
		if query != "" && !matchesPatient(p, query, queryDigits) {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b Patient) int {
		return strings.Compare(foldText(a.Name), foldText(b.Name))
	})
	return out
}

func matchesPatient(p Patient, query, queryDigits string) bool {
	if strings.Contains(foldText(p.Name), query) {
		return true
	}
	return queryDigits != "" && strings.Contains(DigitsOnly(p.CPF), queryDigits)
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// foldText lowercases s and removes combining accent marks.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
