// Package derive computes the read-only facts shown alongside a profile:
// numerology numbers, the Western sun sign, the Chinese zodiac sign and a
// generated yearly theme.
//
// Every function is pure and deterministic. Missing or malformed birthdates
// never cause a panic or an error: numeric derivations return nil, string
// derivations return "", and GenerateTheme reports ok=false so callers leave
// their fields untouched.
//
// Sign boundaries are fixed calendar approximations, not astronomical
// computations.
package derive
