package native

import "fmt"

// ContentType restricts what an input accepts.
type ContentType int

const (
	ContentStandard ContentType = iota
	ContentAutocorrected
	ContentIntegerNumber
	ContentDecimalNumber
	ContentAlphanumeric
	ContentName
	ContentEmailAddress
	ContentPassword
	ContentPin
	ContentCustom
)

// KeyboardType selects the on-screen keyboard layout.
type KeyboardType int

const (
	KeyboardDefault KeyboardType = iota
	KeyboardASCIICapable
	KeyboardNumbersAndPunctuation
	KeyboardURL
	KeyboardNumberPad
	KeyboardPhonePad
	KeyboardNamePhonePad
	KeyboardEmailAddress
	KeyboardNintendoNetworkAccount
	KeyboardSocial
	KeyboardSearch
	KeyboardDecimalPad
	KeyboardOneTimeCode
)

// LineType controls multi-line behavior.
type LineType int

const (
	LineSingle LineType = iota
	LineMultiSubmit
	LineMultiNewline
)

// Validation restricts individual characters.
type Validation int

const (
	ValidationNone Validation = iota
	ValidationDigit
	ValidationInteger
	ValidationDecimal
	ValidationAlphanumeric
	ValidationName
	ValidationRegex
	ValidationEmailAddress
	ValidationCustom
)

// ContentTypeFromInt maps an integer code to a ContentType.
func ContentTypeFromInt(n int) (ContentType, error) {
	if n < int(ContentStandard) || n > int(ContentCustom) {
		return 0, fmt.Errorf("content type %d out of range", n)
	}
	return ContentType(n), nil
}

// KeyboardTypeFromInt maps an integer code to a KeyboardType.
func KeyboardTypeFromInt(n int) (KeyboardType, error) {
	if n < int(KeyboardDefault) || n > int(KeyboardOneTimeCode) {
		return 0, fmt.Errorf("keyboard type %d out of range", n)
	}
	return KeyboardType(n), nil
}

// LineTypeFromInt maps an integer code to a LineType.
func LineTypeFromInt(n int) (LineType, error) {
	if n < int(LineSingle) || n > int(LineMultiNewline) {
		return 0, fmt.Errorf("line type %d out of range", n)
	}
	return LineType(n), nil
}

// ValidationFromInt maps an integer code to a Validation.
func ValidationFromInt(n int) (Validation, error) {
	if n < int(ValidationNone) || n > int(ValidationCustom) {
		return 0, fmt.Errorf("validation %d out of range", n)
	}
	return Validation(n), nil
}
