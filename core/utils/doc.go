// Package utils provides small shared helpers with no dependencies on the
// rest of the application.
//
// It currently covers formatting for reports and CLI output (HumanBytes,
// Percent) and loose numeric coercion (ToInt64) for values coming out of
// JSON payloads and object metadata maps.
package utils
