// Package civiltime implements the civil-calendar conversion the driver
// shell uses to turn a parser-reported mtime (a signed 32-bit count of
// seconds since the UNIX epoch) into the firmware's broken-down time record
// (spec §4.9, used by GetInfo and directory enumeration).
//
// The conversion below is the branch-free days-since-epoch <-> (y, m, d)
// algorithm (Howard Hinnant's civil_from_days/days_from_civil), which
// computes exactly the classical normalization spec §4.9 describes: bucket
// seconds into whole days plus a time-of-day remainder (with Euclidean
// correction so negative timestamps still produce a remainder in [0,
// 86400)), then locate the day within its civil year and month.
package civiltime

import "github.com/efifs/corefs"

// ToCivil converts a signed 32-bit UNIX timestamp to its broken-down civil
// time. t may be negative (pre-1970).
func ToCivil(t int32) efifs.CivilTime {
	seconds := int64(t)
	days := floorDiv(seconds, 86400)
	rem := seconds - days*86400

	y, m, d := civilFromDays(days)

	return efifs.CivilTime{
		Year:   int(y),
		Month:  m,
		Day:    d,
		Hour:   int(rem / 3600),
		Minute: int((rem % 3600) / 60),
		Second: int(rem % 60),
	}
}

// ToSeconds is the inverse of ToCivil, used by tests to check the round-trip
// invariant (#8: for any representable timestamp t, recomposing {y,m,d,h,mi,s}
// back to seconds yields t).
func ToSeconds(c efifs.CivilTime) int32 {
	days := daysFromCivil(int64(c.Year), c.Month, c.Day)
	seconds := days*86400 + int64(c.Hour)*3600 + int64(c.Minute)*60 + int64(c.Second)
	return int32(seconds)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// civilFromDays converts a day count (0 = 1970-01-01) to a (year, month,
// day) civil date.
func civilFromDays(z int64) (year int64, month int, day int) {
	z += 719468
	era := z / 146097
	if z%146097 < 0 {
		era--
	}
	doe := z - era*146097 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	d := doy - (153*mp+2)/5 + 1               // [1, 31]
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, int(m), int(d)
}

// daysFromCivil is the inverse of civilFromDays.
func daysFromCivil(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := y
	if y < 0 {
		era = y - 399
	}
	era /= 400
	yoe := y - era*400 // [0, 399]
	var mp int64
	if m > 2 {
		mp = int64(m) - 3
	} else {
		mp = int64(m) + 9
	}
	doy := (153*mp+2)/5 + int64(d) - 1      // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}
