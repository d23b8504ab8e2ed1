package jalaali

import (
	"fmt"
	"time"
)

// breaks holds the Jalaali years where the leap cycle changes length.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// minJDN and maxJDN bound the Julian Day Numbers accepted by the converters.
var minJDN, maxJDN = jdnBounds()

func jdnBounds() (int, int) {
	first, err := j2d(MinYear, 1, 1)
	if err != nil {
		panic(err)
	}
	next, err := j2d(MaxYear+1, 1, 1)
	if err != nil {
		panic(err)
	}
	return first, next - 1
}

type yearInfo struct {
	// leap is the number of years since the last leap year (0..4).
	leap int
	// gy is the Gregorian year in which jy begins.
	gy int
	// march is the day in March of gy on which Farvardin 1 falls.
	march int
}

func jalCal(jy int) (yearInfo, error) {
	bl := len(breaks)
	if jy < breaks[0] || jy >= breaks[bl-1] {
		return yearInfo{}, fmt.Errorf("%w: year %d", ErrInvalidDateRange, jy)
	}

	gy := jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0
	for i := 1; i < bl; i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}
	n := jy - jp

	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return yearInfo{leap: leap, gy: gy, march: march}, nil
}

// g2d converts a proleptic Gregorian date to a Julian Day Number.
func g2d(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

// d2g converts a Julian Day Number to a proleptic Gregorian date.
func d2g(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j = j + (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}

func j2d(jy, jm, jd int) (int, error) {
	info, err := jalCal(jy)
	if err != nil {
		return 0, err
	}
	return g2d(info.gy, 3, info.march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1, nil
}

func d2j(jdn int) (Date, error) {
	gy, _, _ := d2g(jdn)
	jy := gy - 621
	info, err := jalCal(jy)
	if err != nil {
		return Date{}, err
	}

	k := jdn - g2d(gy, 3, info.march)
	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}, nil
		}
		k -= 186
	} else {
		jy--
		k += 179
		if info.leap == 1 {
			k++
		}
	}
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}, nil
}

// GregorianToJalaali converts a Gregorian year/month/day triple.
func GregorianToJalaali(gy, gm, gd int) (Date, error) {
	if gm < 1 || gm > 12 {
		return Date{}, fmt.Errorf("%w: gregorian month %d", ErrInvalidDate, gm)
	}
	if t := time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC); t.Day() != gd {
		return Date{}, fmt.Errorf("%w: gregorian %04d-%02d-%02d", ErrInvalidDate, gy, gm, gd)
	}

	jdn := g2d(gy, gm, gd)
	if jdn < minJDN || jdn > maxJDN {
		return Date{}, fmt.Errorf("%w: gregorian %04d-%02d-%02d", ErrInvalidDateRange, gy, gm, gd)
	}
	return d2j(jdn)
}

// ToJalaali converts the calendar day of t, in t's own location.
func ToJalaali(t time.Time) (Date, error) {
	gy, gm, gd := t.Date()
	return GregorianToJalaali(gy, int(gm), gd)
}

// JalaaliToGregorian converts a Jalaali date to a Gregorian triple.
func JalaaliToGregorian(jy, jm, jd int) (gy, gm, gd int, err error) {
	if err := (Date{Year: jy, Month: jm, Day: jd}).Validate(); err != nil {
		return 0, 0, 0, err
	}

	jdn, err := j2d(jy, jm, jd)
	if err != nil {
		return 0, 0, 0, err
	}
	if jdn > maxJDN {
		return 0, 0, 0, fmt.Errorf("%w: %04d/%02d/%02d", ErrInvalidDateRange, jy, jm, jd)
	}

	gy, gm, gd = d2g(jdn)
	return gy, gm, gd, nil
}

// ToGregorian returns midnight UTC of the Gregorian day matching jy/jm/jd.
func ToGregorian(jy, jm, jd int) (time.Time, error) {
	return Date{Year: jy, Month: jm, Day: jd}.Time(time.UTC)
}
