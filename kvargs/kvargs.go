// Package kvargs parses key=value command-line tokens into a mapping.
package kvargs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrMissingSeparator matches every ParseError.
var ErrMissingSeparator = errors.New("missing '=' separator")

// ParseError reports a token that is not of the form key=value.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid key=value token %q: %v", e.Token, ErrMissingSeparator)
}

func (e *ParseError) Unwrap() error {
	return ErrMissingSeparator
}

// Split splits a single token at its first '='.
func Split(token string) (key, value string, err error) {
	key, value, ok := strings.Cut(token, "=")
	if !ok {
		return "", "", &ParseError{Token: token}
	}
	return key, value, nil
}

// Parse accumulates key=value tokens into a mapping. A repeated key keeps
// its last value. It stops at the first token without '='.
func Parse(tokens []string) (map[string]string, error) {
	kv := make(KeyValue, len(tokens))
	for _, token := range tokens {
		if err := kv.Set(token); err != nil {
			return nil, err
		}
	}
	return kv, nil
}

// KeyValue is a mapping filled one key=value token at a time. It satisfies
// the flag value interface of the flag and urfave/cli packages, so a
// repeated flag accumulates into a single mapping.
type KeyValue map[string]string

// Set adds one key=value token.
func (kv *KeyValue) Set(token string) error {
	key, value, err := Split(token)
	if err != nil {
		return err
	}
	if *kv == nil {
		*kv = make(KeyValue)
	}
	(*kv)[key] = value
	return nil
}

// String renders the mapping as sorted key=value tokens.
func (kv *KeyValue) String() string {
	if kv == nil || len(*kv) == 0 {
		return ""
	}

	tokens := make([]string, 0, len(*kv))
	for k, v := range *kv {
		tokens = append(tokens, k+"="+v)
	}
	sort.Strings(tokens)

	return strings.Join(tokens, ",")
}
