package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// AgeSuite covers birth date parsing and age arithmetic.
// The invariant "age increments exactly on the birthday" must be preserved.
type AgeSuite struct {
	suite.Suite
}

func TestAgeSuite(t *testing.T) {
	suite.Run(t, new(AgeSuite))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func (s *AgeSuite) mustParse(v string) BirthDate {
	b, err := ParseBirthDate(v)
	s.Require().NoError(err)
	return b
}

func (s *AgeSuite) TestCalculateAge_BirthdayBoundaries() {
	birth := s.mustParse("2010-07-14")

	s.Run("day before birthday", func() {
		s.Equal(13, CalculateAge(birth, day(2024, time.July, 13)))
	})
	s.Run("on birthday", func() {
		s.Equal(14, CalculateAge(birth, day(2024, time.July, 14)))
	})
	s.Run("day after birthday", func() {
		s.Equal(14, CalculateAge(birth, day(2024, time.July, 15)))
	})
	s.Run("earlier month same day", func() {
		s.Equal(13, CalculateAge(birth, day(2024, time.June, 30)))
	})
}

func (s *AgeSuite) TestCalculateAge_LeapDay() {
	birth := s.mustParse("2004-02-29")

	s.Run("28 Feb of a common year is before the birthday", func() {
		s.Equal(18, CalculateAge(birth, day(2023, time.February, 28)))
	})
	s.Run("1 Mar of a common year is after the birthday", func() {
		s.Equal(19, CalculateAge(birth, day(2023, time.March, 1)))
	})
	s.Run("29 Feb of a leap year is the birthday", func() {
		s.Equal(20, CalculateAge(birth, day(2024, time.February, 29)))
	})
}

func (s *AgeSuite) TestCalculateAge_UsesTodayLocation() {
	// 23:30 UTC on 13 July is already 14 July in Jerusalem.
	jerusalem := time.FixedZone("IDT", 3*60*60)
	now := time.Date(2024, time.July, 13, 23, 30, 0, 0, time.UTC).In(jerusalem)
	s.Equal(14, CalculateAge(s.mustParse("2010-07-14"), now))
}

func (s *AgeSuite) TestIsMinor() {
	s.True(IsMinor(0))
	s.True(IsMinor(17))
	s.False(IsMinor(18))
	s.False(IsMinor(64))
}

func (s *AgeSuite) TestParseBirthDate() {
	s.Run("parts are zero padded", func() {
		d, m, y := s.mustParse("2010-07-04").Parts()
		s.Equal("04", d)
		s.Equal("07", m)
		s.Equal("2010", y)
	})

	s.Run("string round trips", func() {
		s.Equal("1999-12-31", s.mustParse("1999-12-31").String())
	})

	for _, bad := range []string{"", "2010-7-14", "14/07/2010", "2023-02-29", "2024-13-01", "2024-04-31", "2010-07-14T00:00:00Z", "yesterday"} {
		s.Run("rejects "+bad, func() {
			_, err := ParseBirthDate(bad)
			s.Error(err)
		})
	}
}

func (s *AgeSuite) TestValidBirthDate() {
	today := day(2024, time.July, 13)

	cases := []struct {
		name  string
		input string
		want  BirthDateProblem
	}{
		{"typical adult", "1990-05-01", BirthDateOK},
		{"minor over ten", "2010-07-14", BirthDateOK},
		{"exactly ten today", "2014-07-13", BirthDateOK},
		{"ten tomorrow", "2014-07-14", BirthDateTooYoung},
		{"exactly one hundred twenty", "1904-07-13", BirthDateOK},
		{"one hundred twenty one", "1903-07-13", BirthDateTooOld},
		{"born today", "2024-07-13", BirthDateTooYoung},
		{"future", "2024-07-14", BirthDateTooYoung},
		{"far future", "2090-01-01", BirthDateTooYoung},
		{"empty", "", BirthDateEmpty},
		{"not a date", "2023-02-30", BirthDateInvalid},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, ClassifyBirthDate(tc.input, today))
			s.Equal(tc.want == BirthDateOK, ValidBirthDate(tc.input, today))
		})
	}
}

func (s *AgeSuite) TestAfter() {
	today := day(2024, time.July, 13)
	s.False(s.mustParse("2024-07-13").After(today))
	s.True(s.mustParse("2024-07-14").After(today))
	s.True(s.mustParse("2024-08-01").After(today))
	s.False(s.mustParse("2023-12-31").After(today))
}
