// Package domain holds the registration form's value objects and pure field
// rules: national ID checksum, name characters, birth date and age, phone
// digits, gender and locale.
//
// Nothing in this package reads the clock. Callers pass "today" explicitly.
package domain
