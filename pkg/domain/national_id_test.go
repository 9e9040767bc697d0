package domain

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "registration/pkg/domain-errors"
)

type NationalIDSuite struct {
	suite.Suite
}

func TestNationalIDSuite(t *testing.T) {
	suite.Run(t, new(NationalIDSuite))
}

// referenceChecksum is the textbook form: weighted digits above 9 are
// replaced by the sum of their two decimal digits.
func referenceChecksum(id string) bool {
	weights := []int{1, 2, 1, 2, 1, 2, 1, 2, 1}
	sum := 0
	for i, w := range weights {
		v := int(id[i]-'0') * w
		if v > 9 {
			v = v/10 + v%10
		}
		sum += v
	}
	return sum%10 == 0
}

func (s *NationalIDSuite) TestKnownValues() {
	valid := []string{"123456782", "039337423", "000000018", "000000000"}
	for _, v := range valid {
		s.Run("valid "+v, func() {
			s.True(ValidNationalID(v))
		})
	}

	invalid := []string{"123456783", "123456789", "039337424", "000000019"}
	for _, v := range invalid {
		s.Run("invalid "+v, func() {
			s.False(ValidNationalID(v))
		})
	}
}

func (s *NationalIDSuite) TestShapeRejectedBeforeChecksum() {
	cases := map[string]string{
		"empty":         "",
		"eight digits":  "12345678",
		"ten digits":    "1234567820",
		"letters":       "12345678a",
		"spaces":        "1234 5678",
		"arabic digits": "١٢٣٤٥٦٧٨٢",
		"sign":          "+23456782",
	}
	for name, v := range cases {
		s.Run(name, func() {
			s.False(ValidNationalID(v))
		})
	}
}

func (s *NationalIDSuite) TestAgreesWithReference() {
	r := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 20000; i++ {
		id := fmt.Sprintf("%09d", r.IntN(1_000_000_000))
		if ValidNationalID(id) != referenceChecksum(id) {
			s.Failf("checksum disagreement", "id %s", id)
			return
		}
	}
}

func (s *NationalIDSuite) TestLastDigitFlip() {
	base := "123456782"
	s.Require().True(ValidNationalID(base))
	for d := byte('0'); d <= '9'; d++ {
		if d == base[8] {
			continue
		}
		flipped := base[:8] + string(d)
		// Only one check digit satisfies the sum for a given prefix.
		s.False(ValidNationalID(flipped), flipped)
	}
}

func (s *NationalIDSuite) TestParseNationalID() {
	s.Run("valid id parses", func() {
		id, err := ParseNationalID("123456782")
		s.Require().NoError(err)
		s.Equal("123456782", id.String())
		s.False(id.IsZero())
		s.Equal("****6782", id.Redacted())
	})

	s.Run("wrong shape is invalid input", func() {
		_, err := ParseNationalID("12345")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("bad checksum is a validation failure", func() {
		_, err := ParseNationalID("123456783")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("short values redact fully", func() {
		s.Equal("****", RedactNationalID("123"))
	})
}
