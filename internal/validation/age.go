package validation

import "time"

// MinimumInfluencerAge is the youngest age allowed to register an
// influencer profile.
const MinimumInfluencerAge = 14

const dateLayout = "2006-01-02"

// Age returns the full years elapsed between birthDate (YYYY-MM-DD) and now.
func Age(birthDate string, now time.Time) (int, error) {
	birth, err := time.Parse(dateLayout, birthDate)
	if err != nil {
		return 0, err
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

// MeetsMinimumAge reports whether birthDate corresponds to someone at least
// minimumAge years old. Malformed dates fail the check.
func MeetsMinimumAge(birthDate string, minimumAge int, now time.Time) bool {
	age, err := Age(birthDate, now)
	if err != nil {
		return false
	}
	return age >= minimumAge
}
