package pathcodec

import (
	"encoding/hex"
	"fmt"
	"path"
)

// DecodeError reports a token that is not valid output of Encode. Serving
// boundaries should translate it into a not-found response rather than a 500.
type DecodeError struct {
	Token  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode path token %q: %s", e.Token, e.Reason)
}

// Encode joins folder and file with a single forward slash and returns the
// hex encoding of the resulting path. Distinct inputs yield distinct tokens
// because hex encoding is a bijection on byte strings.
func Encode(folder, file string) string {
	return hex.EncodeToString([]byte(path.Join(folder, file)))
}

// Decode is the inverse of Encode. It returns a *DecodeError when the token
// has odd length or contains non-hex characters.
func Decode(token string) (string, error) {
	raw, err := hex.DecodeString(token)
	if err != nil {
		return "", &DecodeError{Token: token, Reason: err.Error()}
	}
	return string(raw), nil
}

// Split decodes a token and separates it into directory and filename.
func Split(token string) (dir, file string, err error) {
	decoded, err := Decode(token)
	if err != nil {
		return "", "", err
	}
	dir, file = path.Split(decoded)
	return path.Clean(dir), file, nil
}
