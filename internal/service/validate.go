package service

import "regexp"

// The two flows historically accept different character sets. Walk-in
// vaccination forms allow English letters, digits and light
// punctuation; consultation forms accept any printable ASCII.
var (
	reVaccineText = regexp.MustCompile(`^[A-Za-z0-9\s@.,-]+$`)
	reASCIIText   = regexp.MustCompile(`^[\x00-\x7F\s@.]+$`)
)

// englishOK reports whether every non-empty value matches re. Empty
// strings pass; required-field checks run separately.
func englishOK(re *regexp.Regexp, values ...string) bool {
	for _, v := range values {
		if v == "" {
			continue
		}
		if !re.MatchString(v) {
			return false
		}
	}
	return true
}
